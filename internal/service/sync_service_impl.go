package service

import (
	"context"
	"time"

	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
)

type syncService struct {
	uow db.UnitOfWork
	settings
}

// NewSyncService returns the standalone day synchronizer used for repairs.
// Share WithUserLocks with the clock service so a repair never races a
// transition for the same user.
func NewSyncService(uow db.UnitOfWork, opts ...Option) SyncService {
	return &syncService{uow: uow, settings: newSettings(opts)}
}

func (s *syncService) SyncDay(ctx context.Context, userID string, date time.Time) (summary *domain.DailySummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "date": date.Format(domain.DateLayout)}
	defer observe(ctx, s.observer, "sync_day", startedAt, fields, &err)

	date = domain.DateOf(date, time.UTC)

	unlock := s.locks.Lock(userID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		// Inactive employees keep their history, so repairs are allowed.
		if _, err := repository.NewSQLiteEmployeeRepo(tx).GetByID(ctx, userID); err != nil {
			return unknownUser(userID, err)
		}
		got, err := syncDayTx(ctx, tx, userID, date, s.loc)
		if err != nil {
			return err
		}
		summary = got
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	fields["total_minutes"] = summary.TotalMinutes
	return summary, nil
}
