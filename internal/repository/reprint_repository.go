package repository

import (
	"context"
	"database/sql"

	"github.com/halicz/shopfloor/internal/model"
)

// ReprintRepo provides data access to the reprint_requests table.  Requests
// move PENDING -> APPROVED or PENDING -> REJECTED exactly once; resolution
// happens under a row lock so double reviews surface as ErrConflict.
type ReprintRepo struct{ db *sql.DB }

func NewReprintRepo(db *sql.DB) *ReprintRepo { return &ReprintRepo{db: db} }

// DB exposes the underlying handle for multi-repository transactions.
func (r *ReprintRepo) DB() *sql.DB { return r.db }

const reprintColumns = "id,record_id,requested_by,reason,status,reviewed_by,reviewed_at,created_at"

// Create inserts a pending request referencing a production record.
func (r *ReprintRepo) Create(ctx context.Context, recordID, requestedBy uint64, reason string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reprint_requests (record_id, requested_by, reason, status) VALUES (?,?,?,?)",
		recordID, requestedBy, reason, model.ReprintPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByIDForUpdateTx fetches one request and locks the row so a concurrent
// reviewer blocks until this transaction resolves it.
func (r *ReprintRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.ReprintRequest, error) {
	return scanReprint(tx.QueryRowContext(ctx,
		"SELECT "+reprintColumns+" FROM reprint_requests WHERE id=? LIMIT 1 FOR UPDATE", id))
}

// ResolveTx moves a PENDING request to its terminal status.  ErrConflict is
// returned when the row was already resolved.
func (r *ReprintRepo) ResolveTx(ctx context.Context, tx *sql.Tx, id uint64, status string, reviewerID uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE reprint_requests SET status=?, reviewed_by=?, reviewed_at=NOW() WHERE id=? AND status=?",
		status, reviewerID, id, model.ReprintPending)
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

// ListByStatus returns requests in creation order (the print-queue order
// used by batch approval).  An empty status returns everything.
func (r *ReprintRepo) ListByStatus(ctx context.Context, status string) ([]model.ReprintRequest, error) {
	query := "SELECT " + reprintColumns + " FROM reprint_requests"
	args := []interface{}{}
	if status != "" {
		query += " WHERE status=?"
		args = append(args, status)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ReprintRequest
	for rows.Next() {
		var req model.ReprintRequest
		var reviewedBy sql.NullInt64
		var reviewedAt sql.NullTime
		if err := rows.Scan(&req.ID, &req.RecordID, &req.RequestedBy, &req.Reason,
			&req.Status, &reviewedBy, &reviewedAt, &req.CreatedAt); err != nil {
			return nil, err
		}
		if reviewedBy.Valid {
			v := uint64(reviewedBy.Int64)
			req.ReviewedBy = &v
		}
		if reviewedAt.Valid {
			t := reviewedAt.Time
			req.ReviewedAt = &t
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// ListByRequester returns one operator's own requests, newest first.
func (r *ReprintRepo) ListByRequester(ctx context.Context, userID uint64) ([]model.ReprintRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reprintColumns+" FROM reprint_requests WHERE requested_by=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ReprintRequest
	for rows.Next() {
		var req model.ReprintRequest
		var reviewedBy sql.NullInt64
		var reviewedAt sql.NullTime
		if err := rows.Scan(&req.ID, &req.RecordID, &req.RequestedBy, &req.Reason,
			&req.Status, &reviewedBy, &reviewedAt, &req.CreatedAt); err != nil {
			return nil, err
		}
		if reviewedBy.Valid {
			v := uint64(reviewedBy.Int64)
			req.ReviewedBy = &v
		}
		if reviewedAt.Valid {
			t := reviewedAt.Time
			req.ReviewedAt = &t
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanReprint(row *sql.Row) (model.ReprintRequest, error) {
	var req model.ReprintRequest
	var reviewedBy sql.NullInt64
	var reviewedAt sql.NullTime
	err := row.Scan(&req.ID, &req.RecordID, &req.RequestedBy, &req.Reason,
		&req.Status, &reviewedBy, &reviewedAt, &req.CreatedAt)
	if err != nil {
		return req, err
	}
	if reviewedBy.Valid {
		v := uint64(reviewedBy.Int64)
		req.ReviewedBy = &v
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		req.ReviewedAt = &t
	}
	return req, nil
}
