package model

import "time"

// Event describes one demand-response curtailment window for a customer.
// Events are transient: constructed per request, never persisted.
type Event struct {
	CustomerID string
	Start      time.Time
	End        time.Time

	// ContractCapacityKW, if set, caps the baseline (CBL2).
	ContractCapacityKW *float64
}

// Normalize returns a copy with both endpoints converted to loc.
func (e Event) Normalize(loc *time.Location) Event {
	out := e
	out.Start = e.Start.In(loc)
	out.End = e.End.In(loc)
	return out
}

// Validate checks the window invariant (end strictly after start).
func (e Event) Validate() error {
	if !e.End.After(e.Start) {
		return NewFailure(InvalidWindow, "event end %s must be after start %s",
			e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	return nil
}

// DurationHours is the event length in hours.
func (e Event) DurationHours() float64 {
	return e.End.Sub(e.Start).Hours()
}
