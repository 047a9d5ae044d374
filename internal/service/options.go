package service

import (
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
)

type settings struct {
	now        func() time.Time
	loc        *time.Location
	locks      *UserLocks
	observer   UseCaseObserver
	pagination domain.Pagination
}

// Option configures a service at construction time.
type Option func(*settings)

// WithClock overrides the time source used for new events and "today".
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone that decides an event's work date.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithUserLocks shares one per-user lock table between services so that
// transitions and day syncs for a user never interleave.
func WithUserLocks(l *UserLocks) Option {
	return func(s *settings) {
		if l != nil {
			s.locks = l
		}
	}
}

func WithObserver(o UseCaseObserver) Option {
	return func(s *settings) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithPagination(p domain.Pagination) Option {
	return func(s *settings) {
		s.pagination = p
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		now:        time.Now,
		loc:        time.Local,
		observer:   NoopUseCaseObserver{},
		pagination: domain.DefaultPagination(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.locks == nil {
		s.locks = NewUserLocks()
	}
	return s
}

func (s settings) today() time.Time {
	return domain.DateOf(s.now(), s.loc)
}
