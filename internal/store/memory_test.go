package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dr-baseline/internal/model"
)

func ts(hour int) time.Time {
	return time.Date(2024, time.July, 15, hour, 0, 0, 0, time.UTC)
}

func TestMemoryStorePutAndRead(t *testing.T) {
	st := NewMemoryStore()

	// Inserted out of order; reads come back chronological.
	n, err := st.Put(
		model.DemandSample{CustomerID: "a", Timestamp: ts(12), DemandKW: 3},
		model.DemandSample{CustomerID: "a", Timestamp: ts(8), DemandKW: 1},
		model.DemandSample{CustomerID: "b", Timestamp: ts(9), DemandKW: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got := st.SamplesFor("a")
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].DemandKW)
	assert.Equal(t, 3.0, got[1].DemandKW)

	assert.Empty(t, st.SamplesFor("unknown"))
}

func TestMemoryStoreRejectsMalformedBatch(t *testing.T) {
	st := NewMemoryStore()

	tests := []struct {
		name   string
		sample model.DemandSample
	}{
		{
			name:   "empty customer",
			sample: model.DemandSample{Timestamp: ts(8), DemandKW: 1},
		},
		{
			name:   "zero timestamp",
			sample: model.DemandSample{CustomerID: "a", DemandKW: 1},
		},
		{
			name:   "negative demand",
			sample: model.DemandSample{CustomerID: "a", Timestamp: ts(8), DemandKW: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := model.DemandSample{CustomerID: "a", Timestamp: ts(9), DemandKW: 5}
			_, err := st.Put(good, tt.sample)
			kind, ok := model.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, model.MalformedSample, kind)
			// Nothing from the batch may land, including the good sample.
			assert.Empty(t, st.SamplesFor("a"))
		})
	}
}

func TestMemoryStoreReadsAreCopies(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Put(model.DemandSample{CustomerID: "a", Timestamp: ts(8), DemandKW: 1})
	require.NoError(t, err)

	got := st.SamplesFor("a")
	got[0].DemandKW = 999

	again := st.SamplesFor("a")
	assert.Equal(t, 1.0, again[0].DemandKW)
}

func TestMemoryStoreCustomers(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Put(
		model.DemandSample{CustomerID: "b", Timestamp: ts(8), DemandKW: 1},
		model.DemandSample{CustomerID: "a", Timestamp: ts(8), DemandKW: 1},
		model.DemandSample{CustomerID: "a", Timestamp: ts(9), DemandKW: 2},
	)
	require.NoError(t, err)

	got := st.Customers()
	require.Len(t, got, 2)
	assert.Equal(t, CustomerInfo{ID: "a", SampleCount: 2}, got[0])
	assert.Equal(t, CustomerInfo{ID: "b", SampleCount: 1}, got[1])
}
