package domain

import (
	"fmt"
	"strings"
	"time"
)

type Employee struct {
	ID         string
	Name       string
	Email      string
	Role       Role
	Department string
	Status     EmployeeStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e *Employee) IsHR() bool {
	return e.Role == RoleHR
}

func (e *Employee) IsActive() bool {
	return e.Status == EmployeeActive
}

// Validate checks the fields required before an employee is persisted.
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("employee name is required: %w", ErrInvalidInput)
	}
	if !strings.Contains(e.Email, "@") {
		return fmt.Errorf("employee email %q is not valid: %w", e.Email, ErrInvalidInput)
	}
	if !e.Role.Valid() {
		return fmt.Errorf("employee role %q is not valid: %w", e.Role, ErrInvalidInput)
	}
	return nil
}

// CanAccess reports whether e may read or annotate reports belonging to
// ownerID.
func (e *Employee) CanAccess(ownerID string) bool {
	return e.ID == ownerID || e.IsHR()
}
