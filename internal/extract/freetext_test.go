package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchView struct {
	kind     RuleKind
	activity string
	hour     int
	minute   int
}

func view(ms []Match) []matchView {
	out := make([]matchView, 0, len(ms))
	for _, m := range ms {
		out = append(out, matchView{m.Kind, m.Activity, m.Clock.Hour24(), m.Clock.Minute})
	}
	return out
}

func TestMatcher_Rules(t *testing.T) {
	m := NewMatcher(DefaultLexicon())

	tests := []struct {
		name string
		text string
		want []matchView
	}{
		{
			name: "time then activity with for",
			text: "at 9 for class",
			want: []matchView{{RuleTimeThenActivity, "class", 9, 0}},
		},
		{
			name: "time then activity without for",
			text: "at 10:30 standup meeting",
			want: []matchView{{RuleTimeThenActivity, "standup meeting", 10, 30}},
		},
		{
			name: "activity then time",
			text: "for lunch at 12",
			want: []matchView{{RuleActivityThenTime, "lunch", 12, 0}},
		},
		{
			name: "evening word shifts",
			text: "at 8 in the evening for dinner",
			want: []matchView{{RuleTimeOfDay, "dinner", 20, 0}},
		},
		{
			name: "period word before the time",
			text: "tonight at 8 for dinner",
			want: []matchView{{RuleTimeOfDay, "dinner", 20, 0}},
		},
		{
			name: "period word closing the activity",
			text: "for dinner tonight at 8",
			want: []matchView{{RuleTimeOfDay, "dinner", 20, 0}},
		},
		{
			name: "indonesian period before jam",
			text: "malam jam 7 untuk makan",
			want: []matchView{{RuleTimeOfDay, "makan", 19, 0}},
		},
		{
			name: "evening word leaves afternoon hours",
			text: "at 14 in the evening for dinner",
			want: []matchView{{RuleTimeOfDay, "dinner", 14, 0}},
		},
		{
			name: "pm suffix",
			text: "at 7pm for movie night",
			want: []matchView{{RuleTimeOfDay, "movie night", 19, 0}},
		},
		{
			name: "dotted pm word",
			text: "at 7 p.m. for movie",
			want: []matchView{{RuleTimeOfDay, "movie", 19, 0}},
		},
		{
			name: "morning word does not shift",
			text: "at 8 in the morning for jogging",
			want: []matchView{{RuleTimeOfDay, "jogging", 8, 0}},
		},
		{
			name: "reverse with time of day",
			text: "for dinner at 8 tonight",
			want: []matchView{{RuleTimeOfDay, "dinner", 20, 0}},
		},
		{
			name: "indonesian",
			text: "besok jam 9 pagi kuliah dan jam 12 makan siang",
			want: []matchView{
				{RuleTimeOfDay, "kuliah", 9, 0},
				{RuleTimeThenActivity, "makan siang", 12, 0},
			},
		},
		{
			name: "indonesian afternoon",
			text: "jam 3 sore untuk rapat",
			want: []matchView{{RuleTimeOfDay, "rapat", 15, 0}},
		},
		{
			name: "activity stops at date word",
			text: "at 9 for class tomorrow",
			want: []matchView{{RuleTimeThenActivity, "class", 9, 0}},
		},
		{
			name: "activity stops at clause end",
			text: "at 9 for gym, then relax",
			want: []matchView{{RuleTimeThenActivity, "gym", 9, 0}},
		},
		{
			name: "trailing conjunction stripped",
			text: "at 6 for yoga and",
			want: []matchView{{RuleTimeThenActivity, "yoga", 6, 0}},
		},
		{
			name: "trailing date preposition stripped",
			text: "at 9 for exam on 20/06/2024",
			want: []matchView{{RuleTimeThenActivity, "exam", 9, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view(m.Matches(tt.text)))
		})
	}
}

func TestMatcher_Discards(t *testing.T) {
	m := NewMatcher(DefaultLexicon())

	for _, text := range []string{
		"at 9 for x",
		"at 25 for class",
		"at 9:75 for class",
		"for lunch",
		"at 9",
		"at 9 for",
		"hello there",
		"",
	} {
		assert.Empty(t, m.Matches(text), text)
	}
}

func TestMatcher_ConsumedSpansAreNotRematched(t *testing.T) {
	m := NewMatcher(DefaultLexicon())

	// "for lunch at 3" is also a valid reverse reading, but "lunch" was
	// already consumed by "at 12 for lunch".
	got := view(m.Matches("at 12 for lunch at 3 for tea"))

	require.Len(t, got, 2)
	assert.Equal(t, matchView{RuleTimeThenActivity, "lunch", 12, 0}, got[0])
	assert.Equal(t, matchView{RuleTimeThenActivity, "tea", 3, 0}, got[1])
}

func TestMatcher_OrderIsRuleThenPosition(t *testing.T) {
	m := NewMatcher(DefaultLexicon())

	got := m.Matches("for breakfast at 7 and at 9 pm for movie and at 12 for lunch")

	require.Len(t, got, 3)
	assert.Equal(t, RuleTimeOfDay, got[0].Kind)
	assert.Equal(t, "movie", got[0].Activity)
	assert.Equal(t, RuleTimeThenActivity, got[1].Kind)
	assert.Equal(t, "lunch", got[1].Activity)
	assert.Equal(t, RuleActivityThenTime, got[2].Kind)
	assert.Equal(t, "breakfast", got[2].Activity)
}

func TestMatcher_SpansAreTokenIndexes(t *testing.T) {
	m := NewMatcher(DefaultLexicon())

	got := m.Matches("tomorrow at 9 for class")

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].From)
	assert.Equal(t, 5, got[0].To)
}
