// Package tx wraps a unit of work in a database transaction. Every
// lifecycle operation runs through Run so partial writes are always
// rolled back as a whole.
package tx

import (
	"context"
	"database/sql"
	"fmt"
)

// Fn executes inside a transaction. Returning an error rolls the
// transaction back; nil commits it.
type Fn func(ctx context.Context, tx *sql.Tx) error

// Runner begins transactions. *Real (over *sql.DB) in production,
// fakes in service tests.
type Runner interface {
	Run(ctx context.Context, fn Fn) error
}

type Real struct{ DB *sql.DB }

func NewRunner(db *sql.DB) *Real { return &Real{DB: db} }

func (r *Real) Run(ctx context.Context, fn Fn) (err error) {
	t, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = t.Rollback()
			panic(p)
		}
		if err != nil {
			_ = t.Rollback()
		}
	}()

	if err = fn(ctx, t); err != nil {
		return err
	}
	if err = t.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
