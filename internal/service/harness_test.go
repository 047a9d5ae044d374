package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
	"github.com/alexanderramin/staffclock/internal/testutil"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	db        *sql.DB
	clock     *fakeClock
	observer  *recordingObserver
	employees *repository.SQLiteEmployeeRepo
	events    *repository.SQLiteEventRepo
	summaries *repository.SQLiteSummaryRepo

	Clock     ClockService
	Sync      SyncService
	Sweeper   SweepService
	Reports   ReportService
	Employees EmployeeService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, testutil.NewTestDB(t), nil)
}

// newHarnessWith wires every service over database. A nil uow uses the real
// SQLite unit of work.
func newHarnessWith(t *testing.T, database *sql.DB, uow db.UnitOfWork) *harness {
	t.Helper()
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	h := &harness{
		db:        database,
		clock:     newFakeClock(testutil.At(8, 0)),
		observer:  &recordingObserver{},
		employees: repository.NewSQLiteEmployeeRepo(database),
		events:    repository.NewSQLiteEventRepo(database),
		summaries: repository.NewSQLiteSummaryRepo(database),
	}
	opts := []Option{
		WithClock(h.clock.Now),
		WithLocation(time.UTC),
		WithUserLocks(NewUserLocks()),
		WithObserver(h.observer),
	}
	h.Clock = NewClockService(h.employees, h.events, uow, opts...)
	h.Sync = NewSyncService(uow, opts...)
	h.Sweeper = NewSweepService(h.events, h.Clock, opts...)
	h.Reports = NewReportService(h.employees, h.summaries, opts...)
	h.Employees = NewEmployeeService(h.employees, uow, opts...)
	return h
}

func (h *harness) seed(t *testing.T, name string, opts ...testutil.EmployeeOption) *domain.Employee {
	t.Helper()
	return testutil.SeedEmployee(t, h.db, name, opts...)
}

// record moves the clock to at and records a transition.
func (h *harness) record(t *testing.T, userID string, status domain.EventStatus, at time.Time) (*domain.WorkEvent, error) {
	t.Helper()
	h.clock.Set(at)
	return h.Clock.RecordTransition(context.Background(), userID, status)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
