package model

import "time"

// Reprint request statuses.  A request is terminal once approved or
// rejected; resolved rows are never reopened.
const (
	ReprintPending  = "PENDING"
	ReprintApproved = "APPROVED"
	ReprintRejected = "REJECTED"
)

// ReprintRequest is an operator's ask to reproduce a previously printed
// label; a row in the `reprint_requests` table.  Approval re-renders the
// label from the referenced production record and marks the row resolved.
type ReprintRequest struct {
	ID           uint64     // reprint_requests.id
	RecordID     uint64     // reprint_requests.record_id -> production_records.id
	RequestedBy  uint64     // reprint_requests.requested_by
	Reason       string     // reprint_requests.reason
	Status       string     // reprint_requests.status
	ReviewedBy   *uint64    // reprint_requests.reviewed_by (nullable)
	ReviewedAt   *time.Time // reprint_requests.reviewed_at (nullable)
	CreatedAt    time.Time  // reprint_requests.created_at
}
