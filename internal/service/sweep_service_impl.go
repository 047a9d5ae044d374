package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
	"github.com/safedep/dry/log"
)

type sweepService struct {
	events repository.EventRepo
	clock  ClockService
	settings
}

// NewSweepService force-stops running sessions through clock, so every
// forced STOP goes through the same validation and day sync as a manual one.
// Inactive employees left running are stopped too.
func NewSweepService(events repository.EventRepo, clock ClockService, opts ...Option) SweepService {
	return &sweepService{events: events, clock: clock, settings: newSettings(opts)}
}

func (s *sweepService) Sweep(ctx context.Context) (result SweepResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "sweep", startedAt, fields, &err)

	running, err := s.events.ListRunningUserIDs(ctx)
	if err != nil {
		return result, storeError(err)
	}
	fields["running"] = len(running)

	for _, userID := range running {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, stopErr := s.clock.ForceStop(ctx, userID)
		switch {
		case stopErr == nil:
			result.Ended++
		case errors.Is(stopErr, domain.ErrInvalidSequence):
			result.Skipped++
		default:
			result.Failed++
			log.Errorf("sweep: force stop for user %s failed: %v", userID, stopErr)
		}
	}

	fields["ended"] = result.Ended
	fields["failed"] = result.Failed
	fields["skipped"] = result.Skipped
	if len(running) > 0 {
		log.Infof("sweep: ended %d running sessions, %d failed, %d already stopped",
			result.Ended, result.Failed, result.Skipped)
	}
	return result, nil
}
