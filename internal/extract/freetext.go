package extract

import (
	"strings"
	"unicode/utf8"
)

// RuleKind tags which free-text rule produced a match.
type RuleKind string

const (
	RuleTimeOfDay        RuleKind = "time-of-day-qualified"
	RuleTimeThenActivity RuleKind = "time-then-activity"
	RuleActivityThenTime RuleKind = "activity-then-time"
)

// Match is one phrase recognized by a free-text rule. From and To are token
// indexes of the consumed span [From, To).
type Match struct {
	Kind     RuleKind
	Activity string
	Clock    Clock
	From, To int
}

// rule tries to parse a phrase starting exactly at toks[i].
type rule struct {
	kind  RuleKind
	parse func(m *Matcher, toks []token, i int) (Match, bool)
}

// Matcher runs the prioritized free-text rules over an utterance.
type Matcher struct {
	lex   *Lexicon
	rules []rule
}

// NewMatcher creates a Matcher with the rules in priority order:
// time-of-day-qualified, time-then-activity, activity-then-time.
func NewMatcher(lex *Lexicon) *Matcher {
	return &Matcher{
		lex: lex,
		rules: []rule{
			{RuleTimeOfDay, (*Matcher).parseTimeOfDay},
			{RuleTimeThenActivity, (*Matcher).parseTimeThenActivity},
			{RuleActivityThenTime, (*Matcher).parseActivityThenTime},
		},
	}
}

// Matches returns every accepted match in text. Rules run in priority order,
// each scanning left to right; a span consumed by an earlier match is never
// matched again. Results are ordered by rule, then by position.
func (m *Matcher) Matches(text string) []Match {
	toks := tokenize(text)
	consumed := make([]bool, len(toks))
	var out []Match

	for _, r := range m.rules {
		for i := 0; i < len(toks); {
			match, ok := r.parse(m, toks, i)
			if !ok || overlaps(consumed, match.From, match.To) {
				i++
				continue
			}
			match.Kind = r.kind
			for k := match.From; k < match.To; k++ {
				consumed[k] = true
			}
			out = append(out, match)
			i = match.To
		}
	}
	return out
}

func overlaps(consumed []bool, from, to int) bool {
	for k := from; k < to; k++ {
		if consumed[k] {
			return true
		}
	}
	return false
}

// parseTimeOfDay accepts "at 8 pm [for] dinner", "at 8 in the evening for
// dinner", "tonight at 8 for dinner", "for dinner at 8 tonight" and "for
// dinner tonight at 8". A period is required.
func (m *Matcher) parseTimeOfDay(toks []token, i int) (Match, bool) {
	if clock, next, ok := m.timeAt(toks, i); ok && clock.Period != PeriodNone {
		if act, end, ok := m.activityAt(toks, m.skipActivityLead(toks, next)); ok {
			return Match{Activity: act, Clock: clock, From: i, To: end}, true
		}
	}
	if p, ok := m.lex.PeriodOf(toks[i].norm); ok && !toks[i].stop {
		if clock, next, ok := m.timeAt(toks, i+1); ok && clock.Period == PeriodNone {
			if act, end, ok := m.activityAt(toks, m.skipActivityLead(toks, next)); ok {
				return Match{Activity: act, Clock: clock.With(p), From: i, To: end}, true
			}
		}
	}
	if !m.isActivityLeadAt(toks, i) {
		return Match{}, false
	}
	act, next, ok := m.activityAt(toks, i+1)
	if !ok {
		return Match{}, false
	}
	clock, end, ok := m.timeAt(toks, next)
	if !ok {
		return Match{}, false
	}
	if clock.Period == PeriodNone {
		// "for dinner tonight at 8": the period closes the activity.
		p, ok := m.lex.PeriodOf(toks[next-1].norm)
		if !ok || next-1 <= i+1 {
			return Match{}, false
		}
		if act, ok = m.activityText(toks, i+1, next-1); !ok {
			return Match{}, false
		}
		clock = clock.With(p)
	}
	return Match{Activity: act, Clock: clock, From: i, To: end}, true
}

// parseTimeThenActivity accepts "at 9 [for] class".
func (m *Matcher) parseTimeThenActivity(toks []token, i int) (Match, bool) {
	clock, next, ok := m.timeAt(toks, i)
	if !ok {
		return Match{}, false
	}
	act, end, ok := m.activityAt(toks, m.skipActivityLead(toks, next))
	if !ok {
		return Match{}, false
	}
	return Match{Activity: act, Clock: clock, From: i, To: end}, true
}

// parseActivityThenTime accepts "for lunch at 12".
func (m *Matcher) parseActivityThenTime(toks []token, i int) (Match, bool) {
	if !m.isActivityLeadAt(toks, i) {
		return Match{}, false
	}
	act, next, ok := m.activityAt(toks, i+1)
	if !ok {
		return Match{}, false
	}
	clock, end, ok := m.timeAt(toks, next)
	if !ok {
		return Match{}, false
	}
	return Match{Activity: act, Clock: clock, From: i, To: end}, true
}

// timeAt parses "<lead> <clock> [in the] [period]" at toks[i] and returns the
// index after the phrase.
func (m *Matcher) timeAt(toks []token, i int) (Clock, int, bool) {
	if i+1 >= len(toks) || !m.lex.isTimeLead(toks[i].norm) {
		return Clock{}, 0, false
	}
	clock, ok := ParseClock(toks[i+1].norm)
	if !ok {
		return Clock{}, 0, false
	}
	next := i + 2
	if clock.Period != PeriodNone || toks[i+1].stop {
		return clock, next, true
	}
	k := next
	for k < len(toks) && k-next < 2 && m.lex.fillers[toks[k].norm] {
		k++
	}
	if k < len(toks) {
		if p, ok := m.lex.PeriodOf(toks[k].norm); ok {
			return clock.With(p), k + 1, true
		}
	}
	return clock, next, true
}

// activityAt collects activity words from toks[i]. Collection stops before a
// time phrase, an activity lead, a date word, or a conjunction that introduces
// another phrase, and after a word closing a clause. Edge conjunctions and
// date prepositions are stripped. Activities of one rune or less are rejected.
func (m *Matcher) activityAt(toks []token, i int) (string, int, bool) {
	k := i
	for k < len(toks) {
		t := toks[k]
		if m.startsTime(toks, k) || m.lex.isActivityLead(t.norm) || m.startsDate(toks, k) {
			break
		}
		if m.lex.isConjunction(t.norm) && k+1 < len(toks) &&
			(m.startsTime(toks, k+1) || m.lex.isActivityLead(toks[k+1].norm)) {
			break
		}
		k++
		if t.stop {
			break
		}
	}

	act, ok := m.activityText(toks, i, k)
	if !ok {
		return "", 0, false
	}
	return act, k, true
}

// activityText joins toks[from:to] without edge conjunctions and date
// prepositions. Texts of one rune or less are rejected.
func (m *Matcher) activityText(toks []token, from, to int) (string, bool) {
	for from < to && m.lex.isEdge(toks[from].norm) {
		from++
	}
	for to > from && m.lex.isEdge(toks[to-1].norm) {
		to--
	}
	words := make([]string, 0, to-from)
	for _, t := range toks[from:to] {
		words = append(words, t.word)
	}
	act := strings.TrimSpace(strings.Join(words, " "))
	if utf8.RuneCountInString(act) <= 1 {
		return "", false
	}
	return act, true
}

func (m *Matcher) startsTime(toks []token, k int) bool {
	if k+1 >= len(toks) || !m.lex.isTimeLead(toks[k].norm) {
		return false
	}
	_, ok := ParseClock(toks[k+1].norm)
	return ok
}

func (m *Matcher) startsDate(toks []token, k int) bool {
	if n, _ := m.lex.relativeAt(toks, k); n > 0 {
		return true
	}
	return isDateToken(toks[k].norm)
}

func (m *Matcher) isActivityLeadAt(toks []token, i int) bool {
	return i < len(toks) && m.lex.isActivityLead(toks[i].norm)
}

func (m *Matcher) skipActivityLead(toks []token, i int) int {
	if m.isActivityLeadAt(toks, i) {
		return i + 1
	}
	return i
}
