// Package extract turns text into schedule candidates: marker lines from
// generator output, or heuristic phrases from the user's own words.
package extract

import (
	"strings"
	"time"
)

// Path records which extraction path produced the candidates.
type Path string

const (
	PathMarkers  Path = "markers"
	PathFreeText Path = "free-text"
	PathNone     Path = "none"
)

// Extraction is the result of one pass over a submission.
type Extraction struct {
	Path       Path
	Candidates []Candidate
	Malformed  int
	Duplicates int
	Rules      []RuleKind

	// MarkerLines are the indexes of generated lines that parsed as markers.
	MarkerLines []int
}

// Extractor wires the marker extractor, free-text matcher, date resolver and
// deduplicator together.
type Extractor struct {
	markers  *MarkerExtractor
	matcher  *Matcher
	resolver *Resolver
}

// New creates an Extractor over lex. A nil lex uses DefaultLexicon.
func New(lex *Lexicon) *Extractor {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Extractor{
		markers:  NewMarkerExtractor(lex),
		matcher:  NewMatcher(lex),
		resolver: NewResolver(lex),
	}
}

// Markers scans generated text for marker lines.
func (x *Extractor) Markers(generated string, anchor time.Time) MarkerResult {
	return x.markers.Extract(generated, anchor)
}

// FreeText runs the free-text rules over utterance. The date is resolved
// once for the whole utterance.
func (x *Extractor) FreeText(utterance string, anchor time.Time) ([]Candidate, []RuleKind) {
	date := x.resolver.Resolve(utterance, anchor)
	var out []Candidate
	var rules []RuleKind
	for _, m := range x.matcher.Matches(utterance) {
		if c, ok := NewCandidate(m.Activity, "", m.Clock.On(date), string(m.Kind)); ok {
			out = append(out, c)
			rules = append(rules, m.Kind)
		}
	}
	return out, rules
}

// Extract runs markers over generated text and falls back to the free-text
// rules over the original utterance only when no marker parsed. Narrative
// prose in generated text is never mined. Candidates are deduplicated.
func (x *Extractor) Extract(generated, utterance string, anchor time.Time) Extraction {
	var ex Extraction
	mr := x.Markers(generated, anchor)
	ex.Malformed = mr.Malformed
	ex.MarkerLines = mr.Lines

	cs := mr.Candidates
	ex.Path = PathMarkers
	if len(cs) == 0 {
		cs, ex.Rules = x.FreeText(utterance, anchor)
		ex.Path = PathFreeText
	}
	if len(cs) == 0 {
		ex.Path = PathNone
		return ex
	}
	ex.Candidates, ex.Duplicates = Dedupe(cs)
	return ex
}

// Resolve exposes the date resolver.
func (x *Extractor) Resolve(text string, anchor time.Time) time.Time {
	return x.resolver.Resolve(text, anchor)
}

// Narrative returns generated text without the lines listed in markerLines.
// Every other line, malformed markers included, is kept as written.
func Narrative(generated string, markerLines []int) string {
	drop := make(map[int]bool, len(markerLines))
	for _, i := range markerLines {
		drop[i] = true
	}
	lines := strings.Split(generated, "\n")
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if !drop[i] {
			kept = append(kept, strings.TrimRight(line, "\r"))
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
