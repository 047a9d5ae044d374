package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'employee'
		           CHECK(role IN ('hr','employee')),
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','inactive')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_email ON employees(email)`,

	// seq is the insertion order and breaks ties on occurred_at.
	`CREATE TABLE IF NOT EXISTS work_events (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		user_id     TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		status      TEXT NOT NULL CHECK(status IN ('start','stop')),
		occurred_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_events_user_time ON work_events(user_id, occurred_at, seq)`,

	`CREATE TABLE IF NOT EXISTS daily_summaries (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		work_date     TEXT NOT NULL,
		total_minutes INTEGER NOT NULL DEFAULT 0 CHECK(total_minutes >= 0),
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		UNIQUE (user_id, work_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_daily_summaries_user_date ON daily_summaries(user_id, work_date)`,

	// Department was added after the first release.
	`ALTER TABLE employees ADD COLUMN department TEXT NOT NULL DEFAULT ''`,
}
