package repository

import (
	"context"
	"database/sql"

	"github.com/halicz/shopfloor/internal/model"
)

// ProductRepo provides data access to the products table.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = "id,code,name,expected_weight,tolerance_percent,is_active,created_at,updated_at"

// Create inserts a product.  A duplicate code maps to ErrConflict so the
// handler can answer 409.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (code, name, expected_weight, tolerance_percent) VALUES (?,?,?,?)",
		p.Code, p.Name, p.ExpectedWeight, p.TolerancePercent)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches one product.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	return scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id))
}

// GetByCode fetches one product by its short code.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (model.Product, error) {
	return scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE code=? LIMIT 1", code))
}

// List returns all products, active first, newest within each group.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY is_active DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.ExpectedWeight, &p.TolerancePercent,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row *sql.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.ExpectedWeight, &p.TolerancePercent,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
