package store

import (
	"sort"
	"sync"

	"dr-baseline/internal/model"
)

// MemoryStore is an in-memory sample store keyed by customer id.
// It is safe for concurrent ingest and reads; the engines only ever see
// sorted copies, so a computation never observes a mutation mid-flight.
type MemoryStore struct {
	mu         sync.RWMutex
	byCustomer map[string][]model.DemandSample
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byCustomer: make(map[string][]model.DemandSample)}
}

// Put validates and appends samples. The whole batch is rejected on the
// first malformed sample; nothing is partially ingested.
func (s *MemoryStore) Put(samples ...model.DemandSample) (int, error) {
	for _, smp := range samples {
		if err := smp.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, smp := range samples {
		s.byCustomer[smp.CustomerID] = append(s.byCustomer[smp.CustomerID], smp)
	}
	return len(samples), nil
}

// SamplesFor returns a chronological copy of the customer's samples.
func (s *MemoryStore) SamplesFor(customerID string) []model.DemandSample {
	s.mu.RLock()
	stored := s.byCustomer[customerID]
	out := make([]model.DemandSample, len(stored))
	copy(out, stored)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// CustomerInfo summarizes one customer's stored data.
type CustomerInfo struct {
	ID          string `json:"id"`
	SampleCount int    `json:"sample_count"`
}

// Customers lists known customers sorted by id.
func (s *MemoryStore) Customers() []CustomerInfo {
	s.mu.RLock()
	out := make([]CustomerInfo, 0, len(s.byCustomer))
	for id, samples := range s.byCustomer {
		out = append(out, CustomerInfo{ID: id, SampleCount: len(samples)})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
