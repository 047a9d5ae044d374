package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
)

// EmployeeFilter narrows an employee listing. Search matches name, email or
// department case-insensitively.
type EmployeeFilter struct {
	Search          string
	IncludeInactive bool
	OnlyInactive    bool
	Limit           int
	Offset          int
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, f EmployeeFilter) ([]*domain.Employee, int, error)
	Update(ctx context.Context, e *domain.Employee) error
	SetStatus(ctx context.Context, id string, status domain.EmployeeStatus, at time.Time) error
}

// EventRepo is the append-only work event log. Events are never updated or
// deleted.
type EventRepo interface {
	Append(ctx context.Context, e *domain.WorkEvent) error
	MostRecent(ctx context.Context, userID string) (*domain.WorkEvent, error)
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.WorkEvent, error)
	ListRunningUserIDs(ctx context.Context) ([]string, error)
}

type SummaryRepo interface {
	Upsert(ctx context.Context, userID string, date time.Time, totalMinutes int) (*domain.DailySummary, error)
	GetByID(ctx context.Context, id string) (*domain.DailySummary, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error)
	FindByUserAndRange(ctx context.Context, userID string, start, end time.Time, limit, offset int) ([]*domain.DailySummary, int, error)
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.DailySummary, error)
	UpdateNotes(ctx context.Context, id, notes string, at time.Time) (*domain.DailySummary, error)
}
