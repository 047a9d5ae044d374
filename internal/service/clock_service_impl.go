package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
	"github.com/alexanderramin/staffclock/internal/worklog"
	"github.com/google/uuid"
	"github.com/safedep/dry/log"
)

type clockService struct {
	employees repository.EmployeeRepo
	events    repository.EventRepo
	uow       db.UnitOfWork
	settings
}

func NewClockService(
	employees repository.EmployeeRepo,
	events repository.EventRepo,
	uow db.UnitOfWork,
	opts ...Option,
) ClockService {
	return &clockService{
		employees: employees,
		events:    events,
		uow:       uow,
		settings:  newSettings(opts),
	}
}

func (s *clockService) RecordTransition(ctx context.Context, userID string, status domain.EventStatus) (event *domain.WorkEvent, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "status": string(status)}
	defer observe(ctx, s.observer, "record_transition", startedAt, fields, &err)

	if !status.Valid() {
		return nil, fmt.Errorf("%q: %w", status, domain.ErrInvalidStatus)
	}
	event, err = s.transition(ctx, userID, status, false)
	if err != nil {
		return nil, err
	}
	fields["event_id"] = event.ID
	return event, nil
}

// ForceStop closes userID's running session even when the employee has
// been deactivated since it started.
func (s *clockService) ForceStop(ctx context.Context, userID string) (event *domain.WorkEvent, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.observer, "force_stop", startedAt, fields, &err)

	event, err = s.transition(ctx, userID, domain.StatusStop, true)
	if err != nil {
		return nil, err
	}
	fields["event_id"] = event.ID
	return event, nil
}

func (s *clockService) transition(ctx context.Context, userID string, status domain.EventStatus, allowInactive bool) (event *domain.WorkEvent, err error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		ev, err := transitionTx(ctx, tx, s.settings, userID, status, allowInactive)
		if err != nil {
			return err
		}
		event = ev
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return event, nil
}

func (s *clockService) TodayStatus(ctx context.Context, userID string) (snap *domain.StatusSnapshot, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "today_status", startedAt, map[string]any{"user_id": userID}, &err)

	if _, err = s.employees.GetByID(ctx, userID); err != nil {
		return nil, unknownUser(userID, err)
	}

	now := s.now()
	start, end := domain.DayBounds(domain.DateOf(now, s.loc), s.loc)
	events, err := s.events.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, storeError(err)
	}
	result := worklog.Snapshot(events, now)

	// A session opened on an earlier day is still running but contributes
	// nothing to today's total.
	if result.LastStatus == nil {
		last, err := s.events.MostRecent(ctx, userID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return nil, storeError(err)
		default:
			status, at := last.Status, last.OccurredAt
			result.LastStatus = &status
			result.LastStatusAt = &at
			if status == domain.StatusStart {
				result.Running = true
				result.RunningSince = &at
			}
		}
	}
	return &result, nil
}

func (s *clockService) DaySummaries(ctx context.Context, userID string, start time.Time, end *time.Time) (reports []domain.DayReport, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "day_summaries", startedAt, map[string]any{"user_id": userID}, &err)

	last := s.today()
	if end != nil {
		last = *end
	}
	if last.Before(start) {
		return nil, fmt.Errorf("%s is before %s: %w",
			last.Format(domain.DateLayout), start.Format(domain.DateLayout), domain.ErrInvalidRange)
	}
	if _, err = s.employees.GetByID(ctx, userID); err != nil {
		return nil, unknownUser(userID, err)
	}

	from, _ := domain.DayBounds(start, s.loc)
	_, to := domain.DayBounds(last, s.loc)
	events, err := s.events.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, storeError(err)
	}
	return worklog.DayReports(events, s.loc), nil
}

// transitionTx validates and appends one event inside tx, then resyncs the
// day on STOP. The caller holds the user's lock.
func transitionTx(ctx context.Context, tx db.DBTX, st settings, userID string, status domain.EventStatus, allowInactive bool) (*domain.WorkEvent, error) {
	emp, err := repository.NewSQLiteEmployeeRepo(tx).GetByID(ctx, userID)
	if err != nil {
		return nil, unknownUser(userID, err)
	}
	if !emp.IsActive() && !allowInactive {
		return nil, fmt.Errorf("user %s is inactive: %w", userID, domain.ErrUnknownUser)
	}

	events := repository.NewSQLiteEventRepo(tx)
	last, err := events.MostRecent(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if !domain.CanFollow(last, status) {
		return nil, fmt.Errorf("cannot %s: last status is %s: %w", status, lastLabel(last), domain.ErrInvalidSequence)
	}

	occurredAt := st.now().UTC()
	// A clock that stepped backwards must not reorder the log.
	if last != nil && occurredAt.Before(last.OccurredAt) {
		occurredAt = last.OccurredAt
	}
	ev := &domain.WorkEvent{
		ID:         uuid.New().String(),
		UserID:     userID,
		Status:     status,
		OccurredAt: occurredAt,
	}
	if err := events.Append(ctx, ev); err != nil {
		return nil, err
	}

	if status == domain.StatusStop {
		date := domain.DateOf(occurredAt, st.loc)
		if _, err := syncDayTx(ctx, tx, userID, date, st.loc); err != nil {
			log.Errorf("sync after stop failed for user %s on %s, event %s rolled back: %v",
				userID, date.Format(domain.DateLayout), ev.ID, err)
			return nil, err
		}
	}
	return ev, nil
}

// syncDayTx recomputes one day's closed-session total from the full event
// list and upserts it. Notes on an existing row are kept.
func syncDayTx(ctx context.Context, tx db.DBTX, userID string, date time.Time, loc *time.Location) (*domain.DailySummary, error) {
	start, end := domain.DayBounds(date, loc)
	events, err := repository.NewSQLiteEventRepo(tx).ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	res := worklog.Aggregate(events)
	for _, a := range res.Anomalies {
		log.Warnf("work log anomaly for user %s on %s: %s event %s at %s",
			userID, date.Format(domain.DateLayout), a.Kind, a.EventID, a.At.Format(time.RFC3339))
	}
	return repository.NewSQLiteSummaryRepo(tx).Upsert(ctx, userID, date, res.TotalMinutes)
}

func lastLabel(last *domain.WorkEvent) string {
	if last == nil {
		return "none"
	}
	return string(last.Status)
}
