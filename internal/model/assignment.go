package model

import "time"

// Assignment statuses.  An assignment auto-completes when production
// reaches the target quantity.
const (
	AssignmentActive    = "ACTIVE"
	AssignmentCompleted = "COMPLETED"
	AssignmentCancelled = "CANCELLED"
)

// Assignment binds one operator to one product with a target quantity; a
// row in the `assignments` table.  QuantityProduced is the operator-local
// sequence source: the serial number of the next unit uses
// QuantityProduced + 1, and the column is incremented in the same
// transaction that allocates the global and per-product counters so the
// three can never drift apart.
type Assignment struct {
	ID               uint64    // assignments.id
	OperatorID       uint64    // assignments.operator_id
	ProductID        uint64    // assignments.product_id
	TargetQuantity   int64     // assignments.target_quantity
	QuantityProduced int64     // assignments.quantity_produced
	Status           string    // assignments.status
	CreatedAt        time.Time // assignments.created_at
	UpdatedAt        time.Time // assignments.updated_at
}
