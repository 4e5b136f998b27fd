package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dr-baseline/internal/model"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meter_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMeterJSON(t *testing.T) {
	path := writeTempJSON(t, `{
		"records": [
			{"customer_id": "cust-1", "timestamp": "2024-07-15T16:30:00+08:00", "kw": 42.5},
			{"customer_id": "cust-2", "timestamp": "2024-07-15T17:00:00+08:00", "kw": 10}
		]
	}`)

	file, err := LoadMeterJSON(path)
	require.NoError(t, err)
	require.Len(t, file.Records, 2)
	assert.Equal(t, "cust-1", file.Records[0].CustomerID)
	assert.Equal(t, 42.5, file.Records[0].DemandKW)

	grouped := GroupByCustomer(file)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["cust-1"], 1)
}

func TestLoadMeterJSONMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: `{"records": [`},
		{name: "bad timestamp", content: `{"records": [{"customer_id": "c", "timestamp": "yesterday", "kw": 1}]}`},
		{name: "negative demand", content: `{"records": [{"customer_id": "c", "timestamp": "2024-07-15T16:30:00+08:00", "kw": -1}]}`},
		{name: "missing customer", content: `{"records": [{"timestamp": "2024-07-15T16:30:00+08:00", "kw": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMeterJSON(writeTempJSON(t, tt.content))
			kind, ok := model.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, model.MalformedSample, kind)
		})
	}
}
