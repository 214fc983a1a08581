package model

import "time"

// Product is one manufacturable article as stored in the `products` table.
// ExpectedWeight and TolerancePercent drive the variance check when a unit
// is recorded; both are nullable because the check is opt-in per product.
//
// Fields:
//  ID               – primary key identifier.
//  Code             – unique short code embedded in barcode payloads.
//  Name             – human-readable product name.
//  ExpectedWeight   – target unit weight in kilograms (nullable).
//  TolerancePercent – allowed deviation around the target (nullable).
//  IsActive         – inactive products cannot receive new assignments.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type Product struct {
	ID               uint64    // products.id
	Code             string    // products.code
	Name             string    // products.name
	ExpectedWeight   *float64  // products.expected_weight (nullable)
	TolerancePercent *float64  // products.tolerance_percent (nullable)
	IsActive         bool      // products.is_active
	CreatedAt        time.Time // products.created_at
	UpdatedAt        time.Time // products.updated_at
}
