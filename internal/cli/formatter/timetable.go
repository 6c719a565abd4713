package formatter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timetableLineRe matches narrative lines like "07:00 - Breakfast" or
// "- 7.30 – Gym".
var timetableLineRe = regexp.MustCompile(`^\s*(?:[-*•]\s+)?(\d{1,2})[:.](\d{2})\s*[-–—:]\s*(\S.*?)\s*$`)

// TimetableRow is one "HH:MM - activity" line of a narrative.
type TimetableRow struct {
	Time     string
	Activity string
}

// ParseTimetable extracts timetable rows from text. It reports false unless
// at least two lines have the timetable shape.
func ParseTimetable(text string) ([]TimetableRow, bool) {
	var rows []TimetableRow
	for _, line := range strings.Split(text, "\n") {
		if row, ok := parseTimetableLine(line); ok {
			rows = append(rows, row)
		}
	}
	return rows, len(rows) >= 2
}

func parseTimetableLine(line string) (TimetableRow, bool) {
	m := timetableLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return TimetableRow{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	if hour > 23 || m[2] > "59" {
		return TimetableRow{}, false
	}
	return TimetableRow{Time: fmt.Sprintf("%02d:%s", hour, m[2]), Activity: m[3]}, true
}

// RenderNarrative shows generator prose. When it contains a timetable, the
// timetable lines are aligned and highlighted in place; other lines are kept
// as they are.
func RenderNarrative(text string) string {
	if _, ok := ParseTimetable(text); !ok {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if row, ok := parseTimetableLine(line); ok {
			lines[i] = fmt.Sprintf("  %s  %s %s", StyleTime.Render(row.Time), Dim("│"), row.Activity)
		}
	}
	return strings.Join(lines, "\n")
}
