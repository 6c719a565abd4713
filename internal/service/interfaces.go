package service

import (
	"context"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
)

// ScheduleService is the schedule collection used by the assistant pipeline
// and by the calendar commands. List, Insert and Update form the store port
// the reconciler writes through; the rest are collaborator operations.
type ScheduleService interface {
	List(ctx context.Context) ([]*domain.ScheduleEntry, error)
	// ListDay returns entries starting on day's calendar date in day's location.
	ListDay(ctx context.Context, day time.Time) ([]*domain.ScheduleEntry, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error)
	Get(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	Insert(ctx context.Context, d domain.EntryDraft) (*domain.ScheduleEntry, error)
	Update(ctx context.Context, id string, p domain.EntryPatch) (*domain.ScheduleEntry, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.ScheduleEntry, error)
	Delete(ctx context.Context, id string) error
	// ClearDay deletes every entry starting on day and returns how many went.
	ClearDay(ctx context.Context, day time.Time) (int, error)
}
