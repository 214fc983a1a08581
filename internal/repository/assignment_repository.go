package repository

import (
	"context"
	"database/sql"

	"github.com/halicz/shopfloor/internal/model"
)

// AssignmentRepo provides data access to the assignments table.  The
// quantity_produced column is the operator-local sequence source and is
// only ever advanced through IncrementProducedTx inside the production
// transaction.
type AssignmentRepo struct{ db *sql.DB }

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *AssignmentRepo) DB() *sql.DB { return r.db }

const assignmentColumns = "id,operator_id,product_id,target_quantity,quantity_produced,status,created_at,updated_at"

// Create inserts a new active assignment.
func (r *AssignmentRepo) Create(ctx context.Context, operatorID, productID uint64, target int64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO assignments (operator_id, product_id, target_quantity, status) VALUES (?,?,?,?)",
		operatorID, productID, target, model.AssignmentActive)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches one assignment.
func (r *AssignmentRepo) GetByID(ctx context.Context, id uint64) (model.Assignment, error) {
	return scanAssignment(r.db.QueryRowContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE id=? LIMIT 1", id))
}

// GetByIDForUpdateTx fetches one assignment and locks the row for the rest
// of the transaction.  Production recording locks the assignment first so
// the operator-local sequence advances one unit at a time.
func (r *AssignmentRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Assignment, error) {
	return scanAssignment(tx.QueryRowContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE id=? LIMIT 1 FOR UPDATE", id))
}

// IncrementProducedTx advances quantity_produced by one and flips the
// status to COMPLETED when the target is reached.  Callers must hold the
// row lock via GetByIDForUpdateTx.
func (r *AssignmentRepo) IncrementProducedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE assignments
		 SET quantity_produced = quantity_produced + 1,
		     status = IF(quantity_produced + 1 >= target_quantity AND target_quantity > 0, ?, status)
		 WHERE id = ?`,
		model.AssignmentCompleted, id)
	return err
}

// ListByOperator returns an operator's assignments, active ones first.
func (r *AssignmentRepo) ListByOperator(ctx context.Context, operatorID uint64) ([]model.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+assignmentColumns+` FROM assignments WHERE operator_id=?
		 ORDER BY status='ACTIVE' DESC, created_at DESC`, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// List returns all assignments, newest first.  Used by supervisors.
func (r *AssignmentRepo) List(ctx context.Context) ([]model.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// Cancel marks an active assignment cancelled.  Resolved assignments are
// left untouched and reported as ErrConflict.
func (r *AssignmentRepo) Cancel(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE assignments SET status=? WHERE id=? AND status=?",
		model.AssignmentCancelled, id, model.AssignmentActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func scanAssignment(row *sql.Row) (model.Assignment, error) {
	var a model.Assignment
	err := row.Scan(&a.ID, &a.OperatorID, &a.ProductID, &a.TargetQuantity,
		&a.QuantityProduced, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func collectAssignments(rows *sql.Rows) ([]model.Assignment, error) {
	var out []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.OperatorID, &a.ProductID, &a.TargetQuantity,
			&a.QuantityProduced, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
