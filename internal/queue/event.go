// Package queue defines message payloads exchanged over the message broker
// and the background consumers that react to them.
package queue

// Broker names shared by publishers and consumers.  Production records go
// through a durable work queue (one consumer handles each message);
// configuration updates fan out to every running instance, so they travel
// through a fanout exchange and each instance binds its own queue.
const (
	ProductionQueueName = "production.recorded"
	ConfigExchangeName  = "labelconfig.updated"
)

// ProductionRecordedEvent is published once per recorded unit.  It contains
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type ProductionRecordedEvent struct {
	RecordID     uint64  `json:"record_id"`
	AssignmentID uint64  `json:"assignment_id"`
	OperatorID   uint64  `json:"operator_id"`
	ProductCode  string  `json:"product_code"`
	ProductName  string  `json:"product_name"`
	Serial       string  `json:"serial"`
	GlobalSeq    int64   `json:"global_seq"`
	ProductSeq   int64   `json:"product_seq"`
	Weight       float64 `json:"weight"`
	InRange      bool    `json:"in_range"`
	RecordedAt   string  `json:"recorded_at"`
}

// ConfigUpdatedEvent is published when the label layout is saved or
// imported.  Consumers only use it as an invalidation signal; the new
// layout is fetched through the regular lookup.
type ConfigUpdatedEvent struct {
	ConfigID  uint64 `json:"config_id"`
	UpdatedBy uint64 `json:"updated_by"`
	UpdatedAt string `json:"updated_at"`
}
