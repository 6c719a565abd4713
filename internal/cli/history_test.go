package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat_history")

	appendHistory(path, "  meeting at 2pm  ")
	appendHistory(path, "")
	appendHistory(path, "gym tomorrow")

	assert.Equal(t, []string{"meeting at 2pm", "gym tomorrow"}, loadHistory(path))
}

func TestHistory_MissingFileAndEmptyPath(t *testing.T) {
	assert.Nil(t, loadHistory(filepath.Join(t.TempDir(), "missing")))
	assert.Nil(t, loadHistory(""))
	appendHistory("", "ignored")
}

func TestHistory_KeepsMostRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history")
	var b strings.Builder
	for i := 0; i < maxHistoryLines+20; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	lines := loadHistory(path)
	require.Len(t, lines, maxHistoryLines)
	assert.Equal(t, "line 20", lines[0])
	assert.Equal(t, fmt.Sprintf("line %d", maxHistoryLines+19), lines[len(lines)-1])
}

func TestHistoryCursor_Navigation(t *testing.T) {
	h := newHistoryCursor([]string{"a", "b"})

	line, ok := h.prev()
	require.True(t, ok)
	assert.Equal(t, "b", line)
	line, _ = h.prev()
	assert.Equal(t, "a", line)
	line, _ = h.prev()
	assert.Equal(t, "a", line, "stays on the oldest entry")

	assert.Equal(t, "b", h.next())
	assert.Equal(t, "", h.next())
	assert.Equal(t, "", h.next())
}

func TestHistoryCursor_AddSkipsRepeats(t *testing.T) {
	h := newHistoryCursor(nil)
	_, ok := h.prev()
	assert.False(t, ok)

	h.add("x")
	h.add("x")
	h.add("y")
	assert.Equal(t, []string{"x", "y"}, h.lines)
	line, _ := h.prev()
	assert.Equal(t, "y", line)
}
