package extract

import (
	"regexp"
	"strings"
	"time"
)

const emphasis = "*_~`"

var markerBodyRe = regexp.MustCompile(`(?i)^(?:title|judul)\s*:\s*(.+?)(?:\s*[,;|]\s*|\s+)` +
	`(?:time|waktu|jam|pukul)\s*:\s*(\d{1,2}(?:[:.]\d{2})?(?:\s*[ap]\.?m\.?)?)(?:\s*[,;|]\s*|\s+)` +
	`(?:date|tanggal|tgl)\s*:\s*([0-9/-]+)` +
	`(?:(?:\s*[,;|]\s*|\s+)(?:description|desc|deskripsi|keterangan)\s*:\s*(.*?))?\s*$`)

// fieldLabelRe spots a marker field label anywhere in a line body.
var fieldLabelRe = regexp.MustCompile(`(?i)\b(?:title|judul|time|waktu|jam|pukul|date|tanggal|tgl)\s*:`)

// MarkerResult is the outcome of scanning generator output for markers.
// Lines holds the zero-based index of the line each candidate came from.
// Malformed counts lines that were written as markers but did not parse.
type MarkerResult struct {
	Candidates []Candidate
	Lines      []int
	Malformed  int
}

// MarkerExtractor parses marker lines of the form
//
//	MARKER: title: <text> time: <HH:MM> date: <DD/MM/YYYY> [description: <text>]
//
// Emphasis characters and list bullets around the keyword are tolerated.
type MarkerExtractor struct {
	prefixRe *regexp.Regexp
}

// NewMarkerExtractor creates an extractor recognizing the lexicon's marker
// keywords.
func NewMarkerExtractor(lex *Lexicon) *MarkerExtractor {
	keywords := make([]string, 0, len(lex.markers))
	for _, k := range lex.markers {
		keywords = append(keywords, regexp.QuoteMeta(strings.TrimSpace(k)))
	}
	e := regexp.QuoteMeta(emphasis)
	pattern := `(?i)^\s*(?:[-+•>]+\s*|\d+[.)]\s*)?[` + e + `]*\s*(` + strings.Join(keywords, "|") +
		`)\s*[` + e + `]*\s*:\s*[` + e + `]*\s*(.*)$`
	return &MarkerExtractor{prefixRe: regexp.MustCompile(pattern)}
}

// Extract scans text line by line. A malformed line is counted and skipped;
// it never stops the scan. Dates without a year take anchor's year and are
// placed in anchor's location.
func (x *MarkerExtractor) Extract(text string, anchor time.Time) MarkerResult {
	var res MarkerResult
	for i, line := range strings.Split(text, "\n") {
		c, attempted, ok := x.parseLine(strings.TrimRight(line, "\r"), anchor)
		switch {
		case ok:
			res.Candidates = append(res.Candidates, c)
			res.Lines = append(res.Lines, i)
		case attempted:
			res.Malformed++
		}
	}
	return res
}

// parseLine reports the candidate, whether the line was written as a marker,
// and whether it parsed. A keyword followed by a colon counts as a marker
// attempt only when the keyword is upper case ("MARKER:") or the body names
// a field; "Jadwal: jangan lupa istirahat." is prose.
func (x *MarkerExtractor) parseLine(line string, anchor time.Time) (Candidate, bool, bool) {
	pm := x.prefixRe.FindStringSubmatch(line)
	if pm == nil {
		return Candidate{}, false, false
	}
	body := strings.TrimRight(strings.TrimSpace(pm[2]), emphasis)
	if pm[1] != strings.ToUpper(pm[1]) && !fieldLabelRe.MatchString(body) {
		return Candidate{}, false, false
	}
	m := markerBodyRe.FindStringSubmatch(body)
	if m == nil {
		return Candidate{}, true, false
	}
	clock, ok := ParseClock(m[2])
	if !ok {
		return Candidate{}, true, false
	}
	date, ok := ParseDate(m[3], anchor)
	if !ok {
		return Candidate{}, true, false
	}
	title := strings.Trim(strings.TrimSpace(m[1]), emphasis+`"'`)
	desc := strings.Trim(strings.TrimSpace(m[4]), emphasis+`"'`)
	c, ok := NewCandidate(title, desc, clock.On(date), SourceMarker)
	return c, true, ok
}
