package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

// Append inserts e and sets e.Seq to its insertion order.
func (r *SQLiteEventRepo) Append(ctx context.Context, e *domain.WorkEvent) error {
	query := `INSERT INTO work_events (id, user_id, status, occurred_at)
		VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		string(e.Status),
		formatTimestamp(e.OccurredAt),
	)
	if err != nil {
		return fmt.Errorf("appending work event: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading work event seq: %w", err)
	}
	e.Seq = seq
	return nil
}

// MostRecent returns the user's latest event or ErrNotFound.
func (r *SQLiteEventRepo) MostRecent(ctx context.Context, userID string) (*domain.WorkEvent, error) {
	query := `SELECT seq, id, user_id, status, occurred_at
		FROM work_events WHERE user_id = ?
		ORDER BY occurred_at DESC, seq DESC
		LIMIT 1`
	var e domain.WorkEvent
	var status, occurredAt string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&e.Seq, &e.ID, &e.UserID, &status, &occurredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work event: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work event: %w", err)
	}
	return populateEvent(&e, status, occurredAt)
}

// ListByUserAndRange returns the user's events with start <= occurred_at < end
// in chronological order.
func (r *SQLiteEventRepo) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.WorkEvent, error) {
	query := `SELECT seq, id, user_id, status, occurred_at
		FROM work_events
		WHERE user_id = ? AND occurred_at >= ? AND occurred_at < ?
		ORDER BY occurred_at, seq`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTimestamp(start), formatTimestamp(end))
	if err != nil {
		return nil, fmt.Errorf("listing work events: %w", err)
	}
	defer rows.Close()

	var events []*domain.WorkEvent
	for rows.Next() {
		var e domain.WorkEvent
		var status, occurredAt string
		if err := rows.Scan(&e.Seq, &e.ID, &e.UserID, &status, &occurredAt); err != nil {
			return nil, fmt.Errorf("scanning work event row: %w", err)
		}
		ev, err := populateEvent(&e, status, occurredAt)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work events: %w", err)
	}
	return events, nil
}

// ListRunningUserIDs returns the users whose latest event is a START.
func (r *SQLiteEventRepo) ListRunningUserIDs(ctx context.Context) ([]string, error) {
	query := `SELECT user_id FROM (
			SELECT user_id, status,
			       ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY occurred_at DESC, seq DESC) AS rn
			FROM work_events
		)
		WHERE rn = 1 AND status = 'start'
		ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing running users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning running user: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating running users: %w", err)
	}
	return ids, nil
}

func populateEvent(e *domain.WorkEvent, status, occurredAt string) (*domain.WorkEvent, error) {
	e.Status = domain.EventStatus(status)
	t, err := parseTimestamp(occurredAt)
	if err != nil {
		return nil, fmt.Errorf("parsing occurred_at: %w", err)
	}
	e.OccurredAt = t
	return e, nil
}
