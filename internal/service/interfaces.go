package service

import (
	"context"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
)

type ClockService interface {
	// RecordTransition appends a START or STOP for userID. A STOP also
	// resynchronizes the day's summary in the same transaction.
	RecordTransition(ctx context.Context, userID string, status domain.EventStatus) (*domain.WorkEvent, error)
	// ForceStop is the sweeper's STOP. Unlike RecordTransition it also
	// closes sessions of inactive employees.
	ForceStop(ctx context.Context, userID string) (*domain.WorkEvent, error)
	TodayStatus(ctx context.Context, userID string) (*domain.StatusSnapshot, error)
	// DaySummaries aggregates events per calendar day from start through
	// end. A nil end means today.
	DaySummaries(ctx context.Context, userID string, start time.Time, end *time.Time) ([]domain.DayReport, error)
}

type SyncService interface {
	SyncDay(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error)
}

// SweepResult reports a sweep run. Skipped counts users who stopped on their
// own between the scan and the forced STOP.
type SweepResult struct {
	Ended   int
	Failed  int
	Skipped int
}

type SweepService interface {
	Sweep(ctx context.Context) (SweepResult, error)
}

// ReportQuery selects daily summaries. UserID may name another employee only
// when ActorID is HR; empty means the actor.
type ReportQuery struct {
	ActorID string
	UserID  string
	Start   time.Time
	End     time.Time
	Page    int
	PerPage int
}

type ReportService interface {
	QueryReports(ctx context.Context, q ReportQuery) (*domain.Page[*domain.DailySummary], error)
	UpdateNotes(ctx context.Context, actorID, summaryID, notes string) (*domain.DailySummary, error)
	// ResolveTarget returns whose data actorID may read when asking for
	// userID.
	ResolveTarget(ctx context.Context, actorID, userID string) (string, error)
}

// EmployeeQuery selects a page of the registry.
type EmployeeQuery struct {
	Search          string
	IncludeInactive bool
	OnlyInactive    bool
	Page            int
	PerPage         int
}

// EmployeeUpdate carries a partial change to an employee. Nil fields are
// left as they are.
type EmployeeUpdate struct {
	Name       *string
	Email      *string
	Role       *domain.Role
	Department *string
	Status     *domain.EmployeeStatus
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, q EmployeeQuery) (*domain.Page[*domain.Employee], error)
	// Update applies the non-nil fields of u. Setting the status to
	// inactive behaves like Deactivate.
	Update(ctx context.Context, id string, u EmployeeUpdate) (*domain.Employee, error)
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
}
