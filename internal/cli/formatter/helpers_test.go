package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDayFrom(t *testing.T) {
	now := time.Date(2024, 6, 20, 23, 0, 0, 0, time.UTC) // Thursday

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"same day", now.Add(-20 * time.Hour), "Today"},
		{"next calendar day one hour later", now.Add(time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"this week", now.Add(3 * 24 * time.Hour), "Sunday"},
		{"later", now.Add(10 * 24 * time.Hour), "In 10d"},
		{"past", now.Add(-5 * 24 * time.Hour), "5d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDayFrom(tt.input, now))
		})
	}
}

func TestRelativeDayFrom_UsesNowLocation(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	now := time.Date(2024, 6, 20, 10, 0, 0, 0, wib)
	// 18:00 UTC on the 20th is 01:00 on the 21st in WIB.
	assert.Equal(t, "Tomorrow", RelativeDayFrom(time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC), now))
}

func TestDayTitle(t *testing.T) {
	assert.Equal(t, "Monday, 17 Jun 2024", DayTitle(time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)))
}

func TestCompletedPill(t *testing.T) {
	assert.Contains(t, CompletedPill(true), "Done")
	assert.Contains(t, CompletedPill(false), "Planned")
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	got = TruncID("short")
	assert.Contains(t, got, "short")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0m"},
		{-5 * time.Minute, "0m"},
		{45 * time.Minute, "45m"},
		{time.Hour, "1h"},
		{150 * time.Minute, "2h 30m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.input))
		})
	}
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONG"}, [][]string{{"xyz", "1"}, {"q", "22"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "A    LONG", lines[0])
	assert.Equal(t, "───  ────", lines[1])
	assert.Equal(t, "xyz  1", lines[2])
	assert.Equal(t, "q    22", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
