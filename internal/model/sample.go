package model

import "time"

// MeterReadingsFile matches the JSON shape of exported meter data.
//
// Example:
// {
//   "records": [ {"customer_id": "cust-1", "timestamp": "...", "kw": 42.0}, ... ]
// }
type MeterReadingsFile struct {
	Records []DemandSample `json:"records"`
}

// DemandSample is one interval meter reading. Timestamps carry their own
// zone in the JSON (RFC3339); the engines normalize everything to one
// configured local timezone before comparing.
type DemandSample struct {
	CustomerID string    `json:"customer_id"`
	Timestamp  time.Time `json:"timestamp"`
	DemandKW   float64   `json:"kw"`
}

// Validate rejects samples that cannot be interpreted. A bad sample is
// surfaced as MalformedSample rather than silently skipped; silent
// exclusion would corrupt the baseline.
func (s DemandSample) Validate() error {
	if s.CustomerID == "" {
		return NewFailure(MalformedSample, "sample has empty customer_id")
	}
	if s.Timestamp.IsZero() {
		return NewFailure(MalformedSample, "sample for %q has no timestamp", s.CustomerID)
	}
	if s.DemandKW < 0 {
		return NewFailure(MalformedSample, "sample for %q at %s has negative demand %.3f kW",
			s.CustomerID, s.Timestamp.Format(time.RFC3339), s.DemandKW)
	}
	return nil
}
