package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/staffclock/internal/db"
)

// FailingUoW runs a single transaction (no retries) and fails the first
// ExecContext whose statement satisfies Match. Reads pass through, so a test
// can break one write of a multi-write use case and check the rollback.
type FailingUoW struct {
	DB    *sql.DB
	Match func(query string) bool
	Err   error

	// Failed counts injected failures across transactions.
	Failed atomic.Int32

	nth int32
}

// FailOnWriteTo fails inserts and updates against table.
func FailOnWriteTo(database *sql.DB, table string, err error) *FailingUoW {
	return &FailingUoW{
		DB: database,
		Match: func(query string) bool {
			return strings.Contains(query, "INSERT INTO "+table) || strings.Contains(query, "UPDATE "+table+" ")
		},
		Err: err,
	}
}

// FailOnNthExec fails the nth ExecContext (1-based) of each transaction.
func FailOnNthExec(database *sql.DB, n int32, err error) *FailingUoW {
	u := &FailingUoW{DB: database, Err: err}
	u.Match = func(string) bool { return false }
	u.nth = n
	return u
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingTx{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow   *FailingUoW
	count atomic.Int32
	done  atomic.Bool
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	hit := n == f.uow.nth || f.uow.Match(query)
	if hit && f.done.CompareAndSwap(false, true) {
		f.uow.Failed.Add(1)
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
