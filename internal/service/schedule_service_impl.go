package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/db"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/repository"
)

type scheduleService struct {
	entries repository.ScheduleRepo
	newRepo repository.ScheduleRepoFactory
	uow     db.UnitOfWork
	now     func() time.Time

	observer UseCaseObserver
}

// NewScheduleService builds the schedule service. Reads go through entries;
// writes run inside uow with a repo built by newRepo from the transaction.
func NewScheduleService(
	entries repository.ScheduleRepo,
	newRepo repository.ScheduleRepoFactory,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		entries:  entries,
		newRepo:  newRepo,
		uow:      uow,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	return s.entries.List(ctx)
}

func (s *scheduleService) ListDay(ctx context.Context, day time.Time) ([]*domain.ScheduleEntry, error) {
	from, to := dayBounds(day)
	return s.entries.ListBetween(ctx, from, to)
}

func (s *scheduleService) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	return s.entries.ListBetween(ctx, from, to)
}

func (s *scheduleService) Get(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *scheduleService) Insert(ctx context.Context, d domain.EntryDraft) (entry *domain.ScheduleEntry, err error) {
	defer observe(ctx, s.observer, "insert-entry", time.Now(), map[string]any{"title": d.Title}, &err)

	entry, err = domain.NewEntry(uuid.New().String(), d, s.now())
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.newRepo(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, p domain.EntryPatch) (entry *domain.ScheduleEntry, err error) {
	defer observe(ctx, s.observer, "update-entry", time.Now(), map[string]any{"id": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.newRepo(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := current.Apply(p, s.now()); err != nil {
			return err
		}
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		entry = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *scheduleService) SetCompleted(ctx context.Context, id string, completed bool) (*domain.ScheduleEntry, error) {
	return s.Update(ctx, id, domain.EntryPatch{Completed: &completed})
}

func (s *scheduleService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-entry", time.Now(), map[string]any{"id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.newRepo(tx).Delete(ctx, id)
	})
}

func (s *scheduleService) ClearDay(ctx context.Context, day time.Time) (n int, err error) {
	startedAt := time.Now()
	from, to := dayBounds(day)
	fields := map[string]any{"day": from.Format("2006-01-02")}
	defer func() {
		fields["deleted"] = n
		observe(ctx, s.observer, "clear-day", startedAt, fields, &err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		n, err = s.newRepo(tx).DeleteBetween(ctx, from, to)
		return err
	})
	return n, err
}

// dayBounds returns [midnight, next midnight) of day's date in day's location.
func dayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1)
}
