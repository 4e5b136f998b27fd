package baseline

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteEligibilityCSV writes an eligibility scan as a per-day audit CSV.
func WriteEligibilityCSV(path string, rows []DayEligibility) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date",
		"status",
		"sample_count",
		"window_avg_kw",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.Date.String(),
			string(r.Status),
			strconv.Itoa(r.SampleCount),
			fmtFloat(r.WindowAvgKW),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
