package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// Employee options
type EmployeeOption func(*domain.Employee)

func WithRole(r domain.Role) EmployeeOption {
	return func(e *domain.Employee) {
		e.Role = r
	}
}

func WithEmail(email string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Email = email
	}
}

func WithDepartment(d string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Department = d
	}
}

func WithEmployeeStatus(s domain.EmployeeStatus) EmployeeOption {
	return func(e *domain.Employee) {
		e.Status = s
	}
}

func defaultEmail(name string) string {
	local := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "."))
	if local == "" {
		local = "user"
	}
	return fmt.Sprintf("%s.%d@example.com", local, testEmailCounter.Add(1))
}

func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC()
	e := &domain.Employee{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     defaultEmail(name),
		Role:      domain.RoleEmployee,
		Status:    domain.EmployeeActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SeedEmployee inserts a new test employee and returns it.
func SeedEmployee(t *testing.T, database *sql.DB, name string, opts ...EmployeeOption) *domain.Employee {
	t.Helper()
	e := NewTestEmployee(name, opts...)
	if err := repository.NewSQLiteEmployeeRepo(database).Create(context.Background(), e); err != nil {
		t.Fatalf("seeding employee %q: %v", name, err)
	}
	return e
}

func NewTestEvent(userID string, status domain.EventStatus, at time.Time) *domain.WorkEvent {
	return &domain.WorkEvent{
		ID:         uuid.New().String(),
		UserID:     userID,
		Status:     status,
		OccurredAt: at,
	}
}

// SeedEvents appends events directly, bypassing transition checks, so tests
// can build histories the service would refuse.
func SeedEvents(t *testing.T, database *sql.DB, events ...*domain.WorkEvent) {
	t.Helper()
	repo := repository.NewSQLiteEventRepo(database)
	for _, e := range events {
		if err := repo.Append(context.Background(), e); err != nil {
			t.Fatalf("seeding event %s: %v", e.ID, err)
		}
	}
}

// At builds a UTC instant on 2024-03-04 for compact scenario tables.
func At(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}
