package store

import "dr-baseline/internal/model"

// SampleSource is the read-only time-series accessor the engines consume.
// Implementations return all known samples for a customer in chronological
// order; an unknown customer yields an empty slice, never an error.
type SampleSource interface {
	SamplesFor(customerID string) []model.DemandSample
}
