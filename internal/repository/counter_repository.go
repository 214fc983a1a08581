package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// CounterRepo allocates the global and per-product sequence numbers.  The
// increment is a single UPDATE using MySQL's LAST_INSERT_ID(expr) so the
// read-modify-write happens under the row lock of one statement; two
// concurrent producers can never be handed the same value.  Allocation runs
// inside the caller's production transaction so a failed insert rolls the
// counter back with everything else.
type CounterRepo struct{ DB *sql.DB }

func NewCounterRepo(db *sql.DB) *CounterRepo { return &CounterRepo{DB: db} }

// NextTx increments the counter for a scope and returns the new value.  The
// first allocation for a scope seeds the row; a duplicate-key error from a
// concurrent first writer is absorbed and the update retried once.
func (r *CounterRepo) NextTx(ctx context.Context, tx *sql.Tx, scope string) (int64, error) {
	n, ok, err := bumpCounter(ctx, tx, scope)
	if err != nil {
		return 0, err
	}
	if ok {
		return n, nil
	}
	// No row yet for this scope.  INSERT IGNORE keeps a concurrent seeder
	// from failing the transaction; whoever wins, the retried UPDATE sees
	// the row.
	if _, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO counters (scope, value) VALUES (?, 0)", scope); err != nil {
		return 0, err
	}
	n, ok, err = bumpCounter(ctx, tx, scope)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("counter row missing after seed: " + scope)
	}
	return n, nil
}

// Peek reads a counter without incrementing it.  A scope that was never
// allocated reads as zero.
func (r *CounterRepo) Peek(ctx context.Context, scope string) (int64, error) {
	var v int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT value FROM counters WHERE scope=? LIMIT 1", scope).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

func bumpCounter(ctx context.Context, tx *sql.Tx, scope string) (int64, bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE counters SET value = LAST_INSERT_ID(value + 1) WHERE scope = ?", scope)
	if err != nil {
		return 0, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if affected == 0 {
		return 0, false, nil
	}
	// LAST_INSERT_ID(expr) surfaces the freshly written value through the
	// statement's insert-id, connection-scoped and race-free.
	n, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-key error.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
