package models

import "time"

// MeterRecord is one reading in a batch ingest request.
type MeterRecord struct {
	CustomerID string    `json:"customer_id" binding:"required"`
	Timestamp  time.Time `json:"timestamp" binding:"required"`
	KW         float64   `json:"kw"`
}

// BatchIngestRequest represents the body of POST /api/v1/meter-data/batch
type BatchIngestRequest struct {
	Records []MeterRecord `json:"records" binding:"required"`
}

// CBLRequest represents the body of POST /api/v1/dr/day-select/cbl
type CBLRequest struct {
	CustomerID string    `json:"customer_id" binding:"required"`
	EventStart time.Time `json:"event_start" binding:"required"`
	EventEnd   time.Time `json:"event_end" binding:"required"`
	// ContractCapacityKW caps the baseline (CBL2) when provided.
	ContractCapacityKW *float64 `json:"contract_capacity_kw,omitempty"`
}

// RewardRequest represents the body of POST /api/v1/dr/day-select/reward
type RewardRequest struct {
	CustomerID          string    `json:"customer_id" binding:"required"`
	EventStart          time.Time `json:"event_start" binding:"required"`
	EventEnd            time.Time `json:"event_end" binding:"required"`
	CommittedCapacityKW float64   `json:"committed_capacity_kw" binding:"required"`
	ContractCapacityKW  *float64  `json:"contract_capacity_kw,omitempty"`
}

// EligibilityRequest represents the body of POST /api/v1/dr/day-select/eligibility
type EligibilityRequest struct {
	CustomerID string    `json:"customer_id" binding:"required"`
	EventStart time.Time `json:"event_start" binding:"required"`
	EventEnd   time.Time `json:"event_end" binding:"required"`
}
