package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/google/uuid"
)

const summaryColumns = `id, user_id, work_date, total_minutes, notes, created_at, updated_at`

// SQLiteSummaryRepo implements SummaryRepo using a SQLite database.
type SQLiteSummaryRepo struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteSummaryRepo creates a new SQLiteSummaryRepo.
func NewSQLiteSummaryRepo(conn db.DBTX) *SQLiteSummaryRepo {
	return &SQLiteSummaryRepo{db: conn, now: time.Now}
}

// Upsert creates the (user, date) row or overwrites its total. Notes are
// never touched here.
func (r *SQLiteSummaryRepo) Upsert(ctx context.Context, userID string, date time.Time, totalMinutes int) (*domain.DailySummary, error) {
	now := formatTimestamp(r.now())
	query := `INSERT INTO daily_summaries (id, user_id, work_date, total_minutes, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, '', ?, ?)
		ON CONFLICT (user_id, work_date) DO UPDATE SET
			total_minutes = excluded.total_minutes,
			updated_at = CASE
				WHEN daily_summaries.total_minutes = excluded.total_minutes THEN daily_summaries.updated_at
				ELSE excluded.updated_at
			END`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		userID,
		formatDate(date),
		totalMinutes,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting daily summary: %w", err)
	}
	return r.GetByUserAndDate(ctx, userID, date)
}

func (r *SQLiteSummaryRepo) GetByID(ctx context.Context, id string) (*domain.DailySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM daily_summaries WHERE id = ?`
	return scanSummary(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSummaryRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM daily_summaries WHERE user_id = ? AND work_date = ?`
	return scanSummary(r.db.QueryRowContext(ctx, query, userID, formatDate(date)))
}

// FindByUserAndRange pages through the user's summaries with
// start <= work_date <= end, oldest first. It also returns the total number
// of matching rows.
func (r *SQLiteSummaryRepo) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time, limit, offset int) ([]*domain.DailySummary, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM daily_summaries WHERE user_id = ? AND work_date BETWEEN ? AND ?`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, formatDate(start), formatDate(end)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting daily summaries: %w", err)
	}

	query := `SELECT ` + summaryColumns + ` FROM daily_summaries
		WHERE user_id = ? AND work_date BETWEEN ? AND ?
		ORDER BY work_date
		LIMIT ? OFFSET ?`
	summaries, err := r.query(ctx, query, userID, formatDate(start), formatDate(end), limitClause(limit), offset)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (r *SQLiteSummaryRepo) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.DailySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM daily_summaries
		WHERE user_id = ? AND work_date BETWEEN ? AND ?
		ORDER BY work_date`
	return r.query(ctx, query, userID, formatDate(start), formatDate(end))
}

// UpdateNotes replaces the notes of an existing summary. The total is left
// as the synchronizer wrote it.
func (r *SQLiteSummaryRepo) UpdateNotes(ctx context.Context, id, notes string, at time.Time) (*domain.DailySummary, error) {
	query := `UPDATE daily_summaries SET notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, notes, formatTimestamp(at), id)
	if err != nil {
		return nil, fmt.Errorf("updating daily summary notes: %w", err)
	}
	if err := requireAffected(res, "daily summary"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteSummaryRepo) query(ctx context.Context, query string, args ...any) ([]*domain.DailySummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.DailySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily summaries: %w", err)
	}
	return summaries, nil
}

func scanSummary(row rowScanner) (*domain.DailySummary, error) {
	var s domain.DailySummary
	var workDate, createdAt, updatedAt string
	err := row.Scan(&s.ID, &s.UserID, &workDate, &s.TotalMinutes, &s.Notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("daily summary: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily summary: %w", err)
	}
	if s.WorkDate, err = parseDate(workDate); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
