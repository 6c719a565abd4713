package formatter

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

const clearLine = "\r\033[K"

// progress redraws one status line for commands that run outside the chat
// view. It borrows the chat view's frames so both surfaces look alike.
type progress struct {
	w      io.Writer
	kind   spinner.Spinner
	label  string
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// StartSpinner draws label behind an animated frame on w until the returned
// function is called. The stop function clears the line and may be called
// more than once.
func StartSpinner(w io.Writer, label string) func() {
	ctx, cancel := context.WithCancel(context.Background())
	p := &progress{w: w, kind: spinner.Dot, label: label, cancel: cancel}
	p.wg.Add(1)
	go p.loop(ctx)
	return p.stop
}

func (p *progress) loop(ctx context.Context) {
	defer p.wg.Done()
	tick := time.NewTicker(p.kind.FPS)
	defer tick.Stop()

	for n := 0; ; n++ {
		frame := p.kind.Frames[n%len(p.kind.Frames)]
		fmt.Fprintf(p.w, "\r  %s %s", StyleAccent.Render(frame), Dim(p.label))
		select {
		case <-ctx.Done():
			fmt.Fprint(p.w, clearLine)
			return
		case <-tick.C:
		}
	}
}

func (p *progress) stop() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}
