package extract

import "strings"

// Period is a time-of-day qualifier attached to a clock value.
type Period int

const (
	PeriodNone Period = iota
	PeriodMorning
	PeriodNoon
	PeriodEvening
)

func (p Period) String() string {
	switch p {
	case PeriodMorning:
		return "morning"
	case PeriodNoon:
		return "noon"
	case PeriodEvening:
		return "evening"
	default:
		return "none"
	}
}

// Words is the raw vocabulary the extractor recognizes. Entries may be
// multi-word phrases ("hari ini"). Matching is case-insensitive.
type Words struct {
	Today         []string
	Tomorrow      []string
	Morning       []string
	Noon          []string
	Evening       []string
	Conjunctions  []string
	TimeLeads     []string
	ActivityLeads []string
	Fillers       []string
	DatePreps     []string
	Markers       []string
}

// DefaultWords returns the shipped English and Indonesian vocabulary.
func DefaultWords() Words {
	return Words{
		Today:         []string{"today", "hari ini"},
		Tomorrow:      []string{"tomorrow", "tmrw", "besok"},
		Morning:       []string{"morning", "am", "pagi"},
		Noon:          []string{"noon", "siang"},
		Evening:       []string{"afternoon", "evening", "night", "tonight", "pm", "sore", "malam"},
		Conjunctions:  []string{"and", "dan", "&"},
		TimeLeads:     []string{"at", "jam", "pukul", "@"},
		ActivityLeads: []string{"for", "untuk"},
		Fillers:       []string{"in", "the", "this"},
		DatePreps:     []string{"on", "pada", "tanggal", "tgl"},
		Markers:       []string{"MARKER", "SCHEDULE", "JADWAL"},
	}
}

// Merge returns w with every list of extra appended.
func (w Words) Merge(extra Words) Words {
	return Words{
		Today:         appendWords(w.Today, extra.Today),
		Tomorrow:      appendWords(w.Tomorrow, extra.Tomorrow),
		Morning:       appendWords(w.Morning, extra.Morning),
		Noon:          appendWords(w.Noon, extra.Noon),
		Evening:       appendWords(w.Evening, extra.Evening),
		Conjunctions:  appendWords(w.Conjunctions, extra.Conjunctions),
		TimeLeads:     appendWords(w.TimeLeads, extra.TimeLeads),
		ActivityLeads: appendWords(w.ActivityLeads, extra.ActivityLeads),
		Fillers:       appendWords(w.Fillers, extra.Fillers),
		DatePreps:     appendWords(w.DatePreps, extra.DatePreps),
		Markers:       appendWords(w.Markers, extra.Markers),
	}
}

func appendWords(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	for _, e := range extra {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Lexicon is the compiled, lookup-ready form of Words.
type Lexicon struct {
	today        [][]string
	tomorrow     [][]string
	periods      map[string]Period
	conjunctions map[string]bool
	timeLeads    map[string]bool
	actLeads     map[string]bool
	fillers      map[string]bool
	datePreps    map[string]bool
	markers      []string
}

// NewLexicon compiles w.
func NewLexicon(w Words) *Lexicon {
	l := &Lexicon{
		today:        phrases(w.Today),
		tomorrow:     phrases(w.Tomorrow),
		periods:      make(map[string]Period),
		conjunctions: set(w.Conjunctions),
		timeLeads:    set(w.TimeLeads),
		actLeads:     set(w.ActivityLeads),
		fillers:      set(w.Fillers),
		datePreps:    set(w.DatePreps),
		markers:      w.Markers,
	}
	for _, pw := range []struct {
		words  []string
		period Period
	}{
		{w.Morning, PeriodMorning},
		{w.Noon, PeriodNoon},
		{w.Evening, PeriodEvening},
	} {
		for _, word := range pw.words {
			l.periods[periodKey(word)] = pw.period
		}
	}
	return l
}

// DefaultLexicon compiles DefaultWords.
func DefaultLexicon() *Lexicon {
	return NewLexicon(DefaultWords())
}

// PeriodOf returns the period named by word. Dots are ignored so "p.m."
// matches "pm".
func (l *Lexicon) PeriodOf(word string) (Period, bool) {
	p, ok := l.periods[periodKey(word)]
	return p, ok
}

func (l *Lexicon) isConjunction(norm string) bool { return l.conjunctions[norm] }
func (l *Lexicon) isTimeLead(norm string) bool    { return l.timeLeads[norm] }
func (l *Lexicon) isActivityLead(norm string) bool {
	return l.actLeads[norm]
}

// isEdge reports words stripped from either end of an activity.
func (l *Lexicon) isEdge(norm string) bool {
	return l.conjunctions[norm] || l.datePreps[norm]
}

// relativeAt returns the length in tokens of a today/tomorrow phrase starting
// at toks[i], and whether it means tomorrow.
func (l *Lexicon) relativeAt(toks []token, i int) (n int, tomorrow bool) {
	if n = matchPhrase(l.tomorrow, toks, i); n > 0 {
		return n, true
	}
	return matchPhrase(l.today, toks, i), false
}

func matchPhrase(list [][]string, toks []token, i int) int {
	for _, p := range list {
		if i+len(p) > len(toks) {
			continue
		}
		ok := true
		for k, w := range p {
			if toks[i+k].norm != w {
				ok = false
				break
			}
		}
		if ok {
			return len(p)
		}
	}
	return 0
}

func periodKey(word string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), ".", "")
}

func set(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return m
}

func phrases(words []string) [][]string {
	out := make([][]string, 0, len(words))
	for _, w := range words {
		if f := strings.Fields(strings.ToLower(w)); len(f) > 0 {
			out = append(out, f)
		}
	}
	return out
}
