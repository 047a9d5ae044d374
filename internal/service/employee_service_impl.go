package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
	"github.com/google/uuid"
	"github.com/safedep/dry/log"
)

type employeeService struct {
	employees repository.EmployeeRepo
	uow       db.UnitOfWork
	settings
}

// NewEmployeeService needs the same WithUserLocks as the clock service:
// status changes close running sessions under the user's lock.
func NewEmployeeService(
	employees repository.EmployeeRepo,
	uow db.UnitOfWork,
	opts ...Option,
) EmployeeService {
	return &employeeService{
		employees: employees,
		uow:       uow,
		settings:  newSettings(opts),
	}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	if e.Role == "" {
		e.Role = domain.RoleEmployee
	}
	if err := e.Validate(); err != nil {
		return err
	}

	if _, err := s.employees.GetByEmail(ctx, e.Email); err == nil {
		return fmt.Errorf("email %s is already registered: %w", e.Email, domain.ErrInvalidInput)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return storeError(err)
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := s.now().UTC()
	e.Status = domain.EmployeeActive
	e.CreatedAt = now
	e.UpdatedAt = now
	return storeError(s.employees.Create(ctx, e))
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, unknownUser(id, err)
	}
	return e, nil
}

func (s *employeeService) List(ctx context.Context, q EmployeeQuery) (*domain.Page[*domain.Employee], error) {
	perPage := s.pagination.PerPage(q.PerPage)
	pageNum := domain.PageNumber(q.Page)
	items, total, err := s.employees.List(ctx, repository.EmployeeFilter{
		Search:          q.Search,
		IncludeInactive: q.IncludeInactive,
		OnlyInactive:    q.OnlyInactive,
		Limit:           perPage,
		Offset:          domain.Offset(pageNum, perPage),
	})
	if err != nil {
		return nil, storeError(err)
	}
	p := domain.NewPage(items, pageNum, perPage, total)
	return &p, nil
}

func (s *employeeService) Update(ctx context.Context, id string, u EmployeeUpdate) (updated *domain.Employee, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "update_employee", startedAt, map[string]any{"user_id": id}, &err)

	if u.Status != nil && *u.Status != domain.EmployeeActive && *u.Status != domain.EmployeeInactive {
		return nil, fmt.Errorf("employee status %q is not valid: %w", *u.Status, domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		employees := repository.NewSQLiteEmployeeRepo(tx)
		e, err := employees.GetByID(ctx, id)
		if err != nil {
			return unknownUser(id, err)
		}
		wasActive := e.IsActive()
		applyUpdate(e, u)
		if err := e.Validate(); err != nil {
			return err
		}
		if u.Email != nil {
			other, err := employees.GetByEmail(ctx, e.Email)
			switch {
			case err == nil && other.ID != e.ID:
				return fmt.Errorf("email %s is already registered: %w", e.Email, domain.ErrInvalidInput)
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return err
			}
		}
		if wasActive && !e.IsActive() {
			if err := s.stopRunningTx(ctx, tx, id); err != nil {
				return err
			}
		}
		e.UpdatedAt = s.now().UTC()
		if err := employees.Update(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

func applyUpdate(e *domain.Employee, u EmployeeUpdate) {
	if u.Name != nil {
		e.Name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*u.Email))
	}
	if u.Role != nil {
		e.Role = *u.Role
	}
	if u.Department != nil {
		e.Department = strings.TrimSpace(*u.Department)
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
}

// Deactivate closes a running session before marking the employee inactive,
// since inactive employees can no longer record transitions. Both happen in
// one transaction under the user's lock.
func (s *employeeService) Deactivate(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "deactivate_employee", startedAt, map[string]any{"user_id": id}, &err)

	unlock := s.locks.Lock(id)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		e, err := repository.NewSQLiteEmployeeRepo(tx).GetByID(ctx, id)
		if err != nil {
			return unknownUser(id, err)
		}
		if !e.IsActive() {
			return nil
		}
		if err := s.stopRunningTx(ctx, tx, id); err != nil {
			return err
		}
		return repository.NewSQLiteEmployeeRepo(tx).SetStatus(ctx, id, domain.EmployeeInactive, s.now().UTC())
	})
	return storeError(err)
}

// stopRunningTx appends a STOP when id's last event is a START.
func (s *employeeService) stopRunningTx(ctx context.Context, tx db.DBTX, id string) error {
	last, err := repository.NewSQLiteEventRepo(tx).MostRecent(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case last.Status != domain.StatusStart:
		return nil
	}
	if _, err := transitionTx(ctx, tx, s.settings, id, domain.StatusStop, true); err != nil {
		return fmt.Errorf("stopping running session: %w", err)
	}
	log.Infof("closed running session of user %s before deactivation", id)
	return nil
}

func (s *employeeService) Reactivate(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.employees.SetStatus(ctx, id, domain.EmployeeActive, s.now().UTC()); err != nil {
		return unknownUser(id, err)
	}
	return nil
}
