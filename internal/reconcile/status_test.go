package reconcile

import (
	"errors"
	"testing"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusLine(t *testing.T) {
	one := []*domain.ScheduleEntry{{ID: "a"}}
	two := []*domain.ScheduleEntry{{ID: "a"}, {ID: "b"}}
	fail := []Failure{{Err: errors.New("x")}}

	tests := []struct {
		name string
		sum  Summary
		want string
	}{
		{"nothing detected", Summary{}, NoScheduleMessage},
		{"all saved", Summary{Candidates: 3, Inserted: two, Updated: one}, "✅ Schedule saved: 2 added, 1 updated."},
		{"all failed", Summary{Candidates: 1, Failed: fail}, "❌ Could not save any schedule entry (1 failed)."},
		{"mixed", Summary{Candidates: 2, Inserted: one, Failed: fail}, "⚠️ Schedule partly saved: 1 added, 0 updated, 1 failed."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sum.StatusLine())
		})
	}
}

func TestWritten_InsertsFirst(t *testing.T) {
	s := Summary{
		Inserted: []*domain.ScheduleEntry{{ID: "i"}},
		Updated:  []*domain.ScheduleEntry{{ID: "u"}},
	}
	got := s.Written()
	assert.Equal(t, "i", got[0].ID)
	assert.Equal(t, "u", got[1].ID)
}
