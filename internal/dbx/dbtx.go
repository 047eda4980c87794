// Package dbx provides tiny DB abstractions shared by the document stores:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx, and
// helpers that run a function inside a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the stores.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx is anything that can be committed or rolled back: *sql.Tx, *sqlx.Tx.
type Tx interface {
	Commit() error
	Rollback() error
}

// Run begins a transaction with begin, runs fn with it, and then commits on
// success or rolls back on error/panic. Panics are rethrown.
func Run[T Tx](begin func() (T, error), fn func(tx T) error) (err error) {
	tx, err := begin()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	return err
}

// WithTx runs fn inside a database/sql transaction on db.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM active_timers")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	return Run(
		func() (*sql.Tx, error) { return db.BeginTx(ctx, opts) },
		func(tx *sql.Tx) error { return fn(ctx, tx) },
	)
}
