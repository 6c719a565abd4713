package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{4}|\d{2}))?\b`)
	isoDateRe  = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	clockRe    = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?(am|pm)?$`)
)

// Clock is a wall-clock time as written, before any period shift.
type Clock struct {
	Hour   int
	Minute int
	Period Period
}

// ParseClock parses "9", "09:30", "9.30", "9pm" and "9.30p.m.". Hours must be
// 0-23 and minutes 0-59.
func ParseClock(s string) (Clock, bool) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	s = strings.TrimSuffix(strings.Replace(s, "a.m", "am", 1), ".")
	s = strings.TrimSuffix(strings.Replace(s, "p.m", "pm", 1), ".")
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || minute > 59 {
		return Clock{}, false
	}
	c := Clock{Hour: hour, Minute: minute}
	switch m[3] {
	case "am":
		c.Period = PeriodMorning
	case "pm":
		c.Period = PeriodEvening
	}
	return c, true
}

// With returns c qualified by p unless c already carries a period.
func (c Clock) With(p Period) Clock {
	if c.Period == PeriodNone {
		c.Period = p
	}
	return c
}

// Hour24 returns the hour after applying the period shift.
func (c Clock) Hour24() int {
	return ShiftHour(c.Hour, c.Period)
}

// On returns the instant at c on the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour24(), c.Minute, 0, 0, date.Location())
}

// ShiftHour converts a colloquial hour to 24-hour form. Afternoon and evening
// words move hours 1-11 forward by twelve. Noon words only move 1-5 ("jam 2
// siang" is 14:00, "jam 11 siang" stays 11:00). Morning words and hours
// already past noon are left alone.
func ShiftHour(hour int, p Period) int {
	switch p {
	case PeriodEvening:
		if hour >= 1 && hour <= 11 {
			return hour + 12
		}
	case PeriodNoon:
		if hour >= 1 && hour <= 5 {
			return hour + 12
		}
	}
	return hour
}

// ParseDate parses a single explicit date token: DD/MM/YYYY, DD-MM-YY,
// DD/MM (anchor year) or YYYY-MM-DD. The result is midnight in anchor's
// location. Impossible calendar dates are rejected.
func ParseDate(s string, anchor time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if m := isoDateRe.FindStringSubmatch(s); m != nil && m[0] == s {
		return buildDate(m[1], m[2], m[3], anchor)
	}
	if m := dayMonthRe.FindStringSubmatch(s); m != nil && m[0] == s {
		return buildDate(m[3], m[2], m[1], anchor)
	}
	return time.Time{}, false
}

func buildDate(year, month, day string, anchor time.Time) (time.Time, bool) {
	y := anchor.Year()
	if year != "" {
		y, _ = strconv.Atoi(year)
		if len(year) == 2 {
			y += 2000
		}
	}
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, anchor.Location())
	if t.Day() != d || t.Month() != time.Month(mo) {
		return time.Time{}, false
	}
	return t, true
}

// Resolver turns date words and tokens into calendar dates.
type Resolver struct {
	lex *Lexicon
}

// NewResolver creates a Resolver over lex.
func NewResolver(lex *Lexicon) *Resolver {
	return &Resolver{lex: lex}
}

// Resolve returns the calendar date text refers to, as midnight in anchor's
// location. An explicit date wins over "tomorrow", which wins over "today".
// A date without a year counts only after a date preposition ("on 3/7").
// Text with no date token, or only invalid explicit dates, resolves to the
// anchor's date.
func (r *Resolver) Resolve(text string, anchor time.Time) time.Time {
	if d, ok := r.explicit(text, anchor); ok {
		return d
	}
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	toks := tokenize(text)
	for i := range toks {
		if n, tomorrow := r.lex.relativeAt(toks, i); n > 0 && tomorrow {
			return day.AddDate(0, 0, 1)
		}
	}
	return day
}

func (r *Resolver) explicit(text string, anchor time.Time) (time.Time, bool) {
	for _, m := range isoDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := buildDate(m[1], m[2], m[3], anchor); ok {
			return d, true
		}
	}
	for _, idx := range dayMonthRe.FindAllStringSubmatchIndex(text, -1) {
		day, month := text[idx[2]:idx[3]], text[idx[4]:idx[5]]
		year := ""
		if idx[6] >= 0 {
			year = text[idx[6]:idx[7]]
		} else if !r.afterDatePrep(text[:idx[0]]) {
			// "10-11" alone reads as a range as often as a date.
			continue
		}
		if d, ok := buildDate(year, month, day, anchor); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// afterDatePrep reports whether the last word of prefix is a date
// preposition such as "on" or "tanggal".
func (r *Resolver) afterDatePrep(prefix string) bool {
	words := strings.Fields(strings.ToLower(prefix))
	if len(words) == 0 {
		return false
	}
	return r.lex.datePreps[strings.Trim(words[len(words)-1], ",.;:!?")]
}

// isDateToken reports whether a token is an explicit date. A leap year is
// assumed so 29/02 counts.
func isDateToken(norm string) bool {
	_, ok := ParseDate(norm, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return ok
}
