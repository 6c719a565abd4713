package assistant

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/testutil"
)

func TestFormatScheduleContext(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry("Standup", testutil.WithStart(testutil.At(0, 2, 0))),
		testutil.NewTestEntry("Review", testutil.WithStart(testutil.At(0, 8, 0)), testutil.WithCompleted()),
	}

	got := formatScheduleContext(entries, nil, wib)

	assert.Equal(t, "Current schedule:\n- Standup on 20/06/2024 09:00\n- Review on 20/06/2024 15:00 (done)\n", got)
}

func TestFormatScheduleContext_EmptyOrFailed(t *testing.T) {
	assert.Equal(t, "Current schedule: none.\n", formatScheduleContext(nil, nil, time.UTC))
	entries := []*domain.ScheduleEntry{testutil.NewTestEntry("x")}
	assert.Equal(t, "Current schedule: none.\n", formatScheduleContext(entries, errors.New("boom"), time.UTC))
}

func TestFormatScheduleContext_KeepsLatestEntries(t *testing.T) {
	var entries []*domain.ScheduleEntry
	for i := 0; i < maxContextEntries+5; i++ {
		entries = append(entries, testutil.NewTestEntry(fmt.Sprintf("e%02d", i), testutil.WithStart(testutil.At(i, 9, 0))))
	}

	got := formatScheduleContext(entries, nil, time.UTC)

	assert.Equal(t, maxContextEntries, strings.Count(got, "\n- "))
	assert.NotContains(t, got, "- e00 ")
	assert.Contains(t, got, fmt.Sprintf("- e%02d ", maxContextEntries+4))
}
