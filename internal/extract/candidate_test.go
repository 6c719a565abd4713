package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandidate(t *testing.T) {
	start := time.Date(2024, 6, 20, 14, 0, 0, 0, time.UTC)

	c, ok := NewCandidate("  Meeting ", " notes ", start, SourceMarker)
	require.True(t, ok)
	assert.Equal(t, "Meeting", c.Title)
	assert.Equal(t, "notes", c.Description)
	assert.Equal(t, start.Add(time.Hour), c.End)

	_, ok = NewCandidate("   ", "", start, SourceMarker)
	assert.False(t, ok)
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	nine := time.Date(2024, 6, 16, 9, 0, 0, 0, time.UTC)
	nineWIB := nine.In(time.FixedZone("WIB", 7*3600))

	first, _ := NewCandidate("class", "", nine, string(RuleTimeThenActivity))
	same, _ := NewCandidate("class", "", nineWIB, string(RuleActivityThenTime))
	other, _ := NewCandidate("Class", "", nine, string(RuleTimeThenActivity))
	later, _ := NewCandidate("class", "", nine.Add(time.Hour), string(RuleTimeThenActivity))

	got, dropped := Dedupe([]Candidate{first, same, other, later})

	assert.Equal(t, 1, dropped)
	require.Len(t, got, 3)
	assert.Equal(t, string(RuleTimeThenActivity), got[0].Source)
	assert.Equal(t, "Class", got[1].Title)
	assert.Equal(t, later.Start, got[2].Start)
}

func TestDedupe_Empty(t *testing.T) {
	got, dropped := Dedupe(nil)
	assert.Empty(t, got)
	assert.Zero(t, dropped)
}

func TestCandidateDraft(t *testing.T) {
	start := time.Date(2024, 6, 20, 14, 0, 0, 0, time.UTC)
	c, ok := NewCandidate("Meeting", "room 4", start, SourceMarker)
	require.True(t, ok)

	d := c.Draft()
	assert.Equal(t, "Meeting", d.Title)
	assert.Equal(t, "room 4", d.Description)
	assert.Equal(t, start, d.Start)
	assert.Equal(t, start.Add(time.Hour), d.End)
}
