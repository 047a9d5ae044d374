// Package sweeper runs the auto-end sweep once a day at a fixed local time.
package sweeper

import (
	"context"
	"time"

	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/safedep/dry/log"
)

// Scheduler fires Sweep daily at Hour:Minute in Location.
type Scheduler struct {
	sweeps   service.SweepService
	hour     int
	minute   int
	loc      *time.Location
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
	onResult func(service.SweepResult, error)
}

type Option func(*Scheduler)

// WithClock replaces the time source and timer, for tests.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
		s.after = after
	}
}

// OnResult registers a callback invoked after every run.
func OnResult(fn func(service.SweepResult, error)) Option {
	return func(s *Scheduler) {
		s.onResult = fn
	}
}

func New(sweeps service.SweepService, hour, minute int, loc *time.Location, opts ...Option) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		sweeps: sweeps,
		hour:   hour,
		minute: minute,
		loc:    loc,
		now:    time.Now,
		after:  time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextRun returns the first hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

// Run blocks until ctx is done, sweeping at each scheduled time. A failed run
// is logged and the next day's run still happens.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next := NextRun(s.now(), s.hour, s.minute, s.loc)
		log.Infof("sweeper: next run at %s", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.after(next.Sub(s.now())):
		}

		result, err := s.sweeps.Sweep(ctx)
		if err != nil {
			log.Errorf("sweeper: run failed: %v", err)
		}
		if s.onResult != nil {
			s.onResult(result, err)
		}
	}
}
