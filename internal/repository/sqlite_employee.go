package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/domain"
)

const employeeColumns = `id, name, email, role, department, status, created_at, updated_at`

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo.
func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		strings.ToLower(e.Email),
		string(e.Role),
		e.Department,
		string(e.Status),
		formatTimestamp(e.CreatedAt),
		formatTimestamp(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	return r.scanEmployee(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = ?`
	return r.scanEmployee(r.db.QueryRowContext(ctx, query, strings.ToLower(email)))
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context, f EmployeeFilter) ([]*domain.Employee, int, error) {
	where := []string{"1=1"}
	var args []any

	switch {
	case f.OnlyInactive:
		where = append(where, "status = 'inactive'")
	case !f.IncludeInactive:
		where = append(where, "status = 'active'")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR email LIKE ? OR LOWER(department) LIKE ?)")
		args = append(args, like, like, like)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting employees: %w", err)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + cond + ` ORDER BY name, id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limitClause(f.Limit), f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := r.scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, total, nil
}
// Update overwrites every mutable column of e.
func (r *SQLiteEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees
		SET name = ?, email = ?, role = ?, department = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Name,
		strings.ToLower(e.Email),
		string(e.Role),
		e.Department,
		string(e.Status),
		formatTimestamp(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}
	return requireAffected(res, "employee")
}

func (r *SQLiteEmployeeRepo) SetStatus(ctx context.Context, id string, status domain.EmployeeStatus, at time.Time) error {
	query := `UPDATE employees SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), formatTimestamp(at), id)
	if err != nil {
		return fmt.Errorf("setting employee status: %w", err)
	}
	return requireAffected(res, "employee")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteEmployeeRepo) scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	var role, status, createdAt, updatedAt string
	err := row.Scan(&e.ID, &e.Name, &e.Email, &role, &e.Department, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	e.Role = domain.Role(role)
	e.Status = domain.EmployeeStatus(status)
	if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
