package repository

import (
	"context"
	"database/sql"

	"github.com/halicz/shopfloor/internal/model"
)

// ProductionRepo provides data access to the production_records table.
// Rows are written once inside the recording transaction and never updated;
// reprints re-render from the stored serial and payload strings.
type ProductionRepo struct{ DB *sql.DB }

func NewProductionRepo(db *sql.DB) *ProductionRepo { return &ProductionRepo{DB: db} }

const productionColumns = `id,assignment_id,operator_id,product_id,serial,barcode_payload,
global_seq,product_seq,operator_seq,weight,in_range,deviation_percent,created_at`

// CreateTx inserts a production record within the caller's transaction and
// fills in the generated ID.
func (r *ProductionRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.ProductionRecord) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO production_records
		 (assignment_id, operator_id, product_id, serial, barcode_payload,
		  global_seq, product_seq, operator_seq, weight, in_range, deviation_percent)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rec.AssignmentID, rec.OperatorID, rec.ProductID, rec.Serial, rec.BarcodePayload,
		rec.GlobalSeq, rec.ProductSeq, rec.OperatorSeq, rec.Weight, rec.InRange, rec.DeviationPercent)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// GetByID fetches one production record.
func (r *ProductionRepo) GetByID(ctx context.Context, id uint64) (model.ProductionRecord, error) {
	return scanProduction(r.DB.QueryRowContext(ctx,
		"SELECT "+productionColumns+" FROM production_records WHERE id=? LIMIT 1", id))
}

// ListFilter narrows a production history query.  Zero values mean "any".
type ListFilter struct {
	OperatorID uint64
	ProductID  uint64
	Limit      int
	Offset     int
}

// List returns production records newest first, optionally filtered by
// operator and/or product.
func (r *ProductionRepo) List(ctx context.Context, f ListFilter) ([]model.ProductionRecord, error) {
	query := "SELECT " + productionColumns + " FROM production_records WHERE 1=1"
	args := make([]interface{}, 0, 4)
	if f.OperatorID != 0 {
		query += " AND operator_id=?"
		args = append(args, f.OperatorID)
	}
	if f.ProductID != 0 {
		query += " AND product_id=?"
		args = append(args, f.ProductID)
	}
	query += " ORDER BY id DESC"
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ProductionRecord
	for rows.Next() {
		rec, err := scanProductionRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanProduction(row *sql.Row) (model.ProductionRecord, error) {
	var rec model.ProductionRecord
	err := row.Scan(&rec.ID, &rec.AssignmentID, &rec.OperatorID, &rec.ProductID,
		&rec.Serial, &rec.BarcodePayload, &rec.GlobalSeq, &rec.ProductSeq, &rec.OperatorSeq,
		&rec.Weight, &rec.InRange, &rec.DeviationPercent, &rec.CreatedAt)
	return rec, err
}

func scanProductionRows(rows *sql.Rows) (model.ProductionRecord, error) {
	var rec model.ProductionRecord
	err := rows.Scan(&rec.ID, &rec.AssignmentID, &rec.OperatorID, &rec.ProductID,
		&rec.Serial, &rec.BarcodePayload, &rec.GlobalSeq, &rec.ProductSeq, &rec.OperatorSeq,
		&rec.Weight, &rec.InRange, &rec.DeviationPercent, &rec.CreatedAt)
	return rec, err
}
