package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// loadHistory reads chat history from path, keeping the most recent
// maxHistoryLines entries. Returns nil if the file cannot be read.
func loadHistory(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

// appendHistory appends one line to the history file. History is best-effort;
// errors are ignored.
func appendHistory(path, line string) {
	line = strings.TrimSpace(line)
	if path == "" || line == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(line + "\n")
}

// historyCursor walks backwards and forwards through past inputs.
type historyCursor struct {
	lines []string
	pos   int // len(lines) means "not browsing"
}

func newHistoryCursor(lines []string) *historyCursor {
	return &historyCursor{lines: lines, pos: len(lines)}
}

func (h *historyCursor) add(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
	}
	h.pos = len(h.lines)
}

// prev returns the previous entry, staying on the oldest one.
func (h *historyCursor) prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.lines[h.pos], true
}

// next returns the following entry, or "" once past the newest.
func (h *historyCursor) next() string {
	if h.pos >= len(h.lines)-1 {
		h.pos = len(h.lines)
		return ""
	}
	h.pos++
	return h.lines[h.pos]
}
