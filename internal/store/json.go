package store

import (
	"encoding/json"
	"os"

	"dr-baseline/internal/model"
)

// LoadMeterJSON reads a meter readings file and validates every record.
func LoadMeterJSON(path string) (*model.MeterReadingsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file model.MeterReadingsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, model.NewFailure(model.MalformedSample, "invalid meter JSON %s: %v", path, err)
	}
	for _, r := range file.Records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return &file, nil
}

// GroupByCustomer splits a readings file into customer-keyed slices.
func GroupByCustomer(file *model.MeterReadingsFile) map[string][]model.DemandSample {
	out := map[string][]model.DemandSample{}
	if file == nil {
		return out
	}
	for _, r := range file.Records {
		out[r.CustomerID] = append(out[r.CustomerID], r)
	}
	return out
}
