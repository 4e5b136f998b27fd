package models

import "time"

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine code, a human message, and optional
// structured context (e.g. qualifying-day counts).
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// IngestResponse reports a completed batch ingest.
type IngestResponse struct {
	Status   string `json:"status"`
	Inserted int    `json:"inserted"`
}

// CBLResponse carries the final CBL plus every intermediate value.
type CBLResponse struct {
	ID                 string             `json:"id,omitempty"`
	CustomerID         string             `json:"customer_id"`
	EventStart         time.Time          `json:"event_start"`
	EventEnd           time.Time          `json:"event_end"`
	CBLKW              float64            `json:"cbl_kw"`
	BaselineSourceDays []string           `json:"baseline_source_days"`
	Method             string             `json:"method"`
	Detail             map[string]float64 `json:"detail"`
}

// RewardResponse embeds the full baseline detail plus the reward fields.
type RewardResponse struct {
	ID                  string      `json:"id"`
	Baseline            CBLResponse `json:"baseline"`
	ActualAvgKW         float64     `json:"actual_avg_kw"`
	ActualReductionKW   float64     `json:"actual_reduction_kw"`
	CommittedCapacityKW float64     `json:"committed_capacity_kw"`
	ExecutionRate       float64     `json:"execution_rate"`
	ReductionRatio      float64     `json:"reduction_ratio"`
	TariffRate          float64     `json:"tariff_rate"`
	DurationHours       float64     `json:"duration_hours"`
	RewardAmount        float64     `json:"reward_amount"`
}

// EligibilityDay is one row of a qualification scan.
type EligibilityDay struct {
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	SampleCount int     `json:"sample_count"`
	WindowAvgKW float64 `json:"window_avg_kw"`
}

// EligibilityResponse reports what the baseline search saw, day by day.
type EligibilityResponse struct {
	ID             string           `json:"id"`
	CustomerID     string           `json:"customer_id"`
	QualifiedCount int              `json:"qualified_count"`
	RequiredCount  int              `json:"required_count"`
	Days           []EligibilityDay `json:"days"`
}

// TariffInfo is one entry of the configured tariff table.
type TariffInfo struct {
	DurationHours float64 `json:"duration_hours"`
	Rate          float64 `json:"rate"`
}
