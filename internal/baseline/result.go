package baseline

import (
	"time"

	"dr-baseline/internal/timewin"
)

// Method tags the CBL variant so downstream consumers can tell which
// selection rules produced a result.
const Method = "day-select-cbl-v1"

// Result carries the final CBL and every intermediate value of the
// derivation. This is the primary audit artifact: billing disputes are
// settled by replaying these numbers.
type Result struct {
	CustomerID string
	EventStart time.Time
	EventEnd   time.Time

	// CBLKW = min(CBL1KW + AdjustmentFactorKW, CBL2KW).
	CBLKW float64

	// BaselineSourceDays are the qualifying days, chronological.
	BaselineSourceDays []timewin.Date

	CBL1KW             float64
	AdjustmentFactorKW float64
	CBL1PlusAFKW       float64
	CBL2KW             float64

	HistAdjustAvgKW  float64
	TodayAdjustAvgKW float64
}

// Detail returns the intermediate values as a flat map, the shape the
// serving layer exposes for auditability.
func (r *Result) Detail() map[string]float64 {
	return map[string]float64{
		"cbl1_kw":             r.CBL1KW,
		"af_kw":               r.AdjustmentFactorKW,
		"cbl1_plus_af_kw":     r.CBL1PlusAFKW,
		"cbl2_kw":             r.CBL2KW,
		"cbl_kw":              r.CBLKW,
		"hist_adjust_avg_kw":  r.HistAdjustAvgKW,
		"today_adjust_avg_kw": r.TodayAdjustAvgKW,
	}
}
