package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimetable(t *testing.T) {
	text := "Here is your plan:\n07:00 - Wake up\n- 8.30 – Breakfast\n12:00: Lunch\nEnjoy!"

	rows, ok := ParseTimetable(text)

	require.True(t, ok)
	assert.Equal(t, []TimetableRow{
		{Time: "07:00", Activity: "Wake up"},
		{Time: "08:30", Activity: "Breakfast"},
		{Time: "12:00", Activity: "Lunch"},
	}, rows)
}

func TestParseTimetable_NeedsTwoRows(t *testing.T) {
	_, ok := ParseTimetable("Meeting moved.\n14:00 - Meeting")
	assert.False(t, ok)
}

func TestParseTimetable_RejectsImpossibleTimes(t *testing.T) {
	rows, ok := ParseTimetable("25:00 - Nope\n10:75 - Nope\n09:00 - Yes")
	assert.False(t, ok)
	assert.Len(t, rows, 1)
}

func TestRenderNarrative(t *testing.T) {
	plain := "Sure, noted."
	assert.Equal(t, plain, RenderNarrative(plain))

	out := stripANSI(RenderNarrative("Plan:\n7:00 - Run\n08:00 - Eat"))
	assert.Equal(t, "Plan:\n  07:00  │ Run\n  08:00  │ Eat", out)
}
