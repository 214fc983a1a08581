package model

import "time"

// ProductionRecord is the immutable row written once per produced unit.
// Serial and BarcodePayload are derived by the serial package at record
// time and never recomputed; reprint approvals re-render the label from
// these stored strings.
type ProductionRecord struct {
	ID               uint64    // production_records.id
	AssignmentID     uint64    // production_records.assignment_id
	OperatorID       uint64    // production_records.operator_id
	ProductID        uint64    // production_records.product_id
	Serial           string    // production_records.serial
	BarcodePayload   string    // production_records.barcode_payload
	GlobalSeq        int64     // production_records.global_seq
	ProductSeq       int64     // production_records.product_seq
	OperatorSeq      int64     // production_records.operator_seq
	Weight           float64   // production_records.weight (kg)
	InRange          bool      // production_records.in_range
	DeviationPercent *float64  // production_records.deviation_percent (nullable)
	CreatedAt        time.Time // production_records.created_at
}
