package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/testutil"
)

func TestExport_WritesOneEventPerEntry(t *testing.T) {
	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry("Standup", testutil.WithID("e1"), testutil.WithStart(testutil.At(0, 9, 0))),
		testutil.NewTestEntry("Review", testutil.WithID("e2"), testutil.WithCompleted(), testutil.WithDescription("quarterly")),
	}
	var buf bytes.Buffer

	require.NoError(t, Export(&buf, entries, testutil.Anchor))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:e1")
	assert.Contains(t, out, "SUMMARY:Standup")
	assert.Contains(t, out, "DTSTART:20240620T090000Z")
	assert.Contains(t, out, "STATUS:COMPLETED")
	assert.Contains(t, out, "PRODID:"+productID)
}

func TestExportThenParse_RoundTrip(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry("Standup", testutil.WithStart(testutil.At(0, 2, 0))),
		testutil.NewTestEntry("Workshop", testutil.WithStart(testutil.At(1, 6, 0)),
			testutil.WithEnd(testutil.At(1, 9, 0)), testutil.WithDescription("bring laptop")),
	}
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, entries, testutil.Anchor))

	res, err := Parse(&buf, wib)
	require.NoError(t, err)

	assert.Zero(t, res.Skipped)
	require.Len(t, res.Candidates, 2)
	first := res.Candidates[0]
	assert.Equal(t, "Standup", first.Title)
	assert.True(t, first.Start.Equal(testutil.At(0, 2, 0)))
	assert.Equal(t, 9, first.Start.Hour(), "converted to the requested zone")
	assert.Equal(t, extract.SourceICS, first.Source)

	second := res.Candidates[1]
	assert.Equal(t, "bring laptop", second.Description)
	assert.Equal(t, 3*time.Hour, second.End.Sub(second.Start))
}

const mixedCalendar = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:timed\r\n" +
	"DTSTART:20240621T070000Z\r\n" +
	"SUMMARY:Run\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:allday\r\n" +
	"DTSTART;VALUE=DATE:20240622\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:untitled\r\n" +
	"DTSTART:20240623T070000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:nostart\r\n" +
	"SUMMARY:Floating\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParse_SkipsUnusableEvents(t *testing.T) {
	res, err := Parse(strings.NewReader(mixedCalendar), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Skipped)
	require.Len(t, res.Candidates, 1)
	c := res.Candidates[0]
	assert.Equal(t, "Run", c.Title)
	assert.Equal(t, time.Date(2024, 6, 21, 7, 0, 0, 0, time.UTC), c.Start)
	assert.Equal(t, time.Date(2024, 6, 21, 8, 0, 0, 0, time.UTC), c.End, "no DTEND keeps the default hour")
}
