package baseline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dr-baseline/internal/model"
	"dr-baseline/internal/store"
	"dr-baseline/internal/timewin"
)

var taipei = mustLoadLocation("Asia/Taipei")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func testConfig() Config {
	return Config{
		Location:        taipei,
		MinBaselineDays: 20,
		SearchLimitDays: 90,
		Calendar: timewin.NewCalendar(
			timewin.MonthDay{Month: time.May, Day: 1},
			timewin.MonthDay{Month: time.October, Day: 31},
			nil,
		),
		AdjustWindow: timewin.Window{Start: 22 * 60, End: 0},
	}
}

func newTestEngine(t *testing.T, st *store.MemoryStore, cfg Config) *Engine {
	t.Helper()
	engine, err := New(st, cfg)
	require.NoError(t, err)
	return engine
}

// A Monday inside the active season.
var eventDate = timewin.Date{Year: 2024, Month: time.July, Day: 15}

func eventAt(startHour, endHour int) model.Event {
	return model.Event{
		CustomerID: "cust-1",
		Start:      time.Date(eventDate.Year, eventDate.Month, eventDate.Day, startHour, 0, 0, 0, taipei),
		End:        time.Date(eventDate.Year, eventDate.Month, eventDate.Day, endHour, 0, 0, 0, taipei),
	}
}

// priorWeekdays returns the n nearest Mon-Fri days before from, nearest first.
func priorWeekdays(from timewin.Date, n int) []timewin.Date {
	var out []timewin.Date
	d := from.Prev()
	for len(out) < n {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			out = append(out, d)
		}
		d = d.Prev()
	}
	return out
}

func putSample(t *testing.T, st *store.MemoryStore, d timewin.Date, hour, minute int, kw float64) {
	t.Helper()
	_, err := st.Put(model.DemandSample{
		CustomerID: "cust-1",
		Timestamp:  time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, taipei),
		DemandKW:   kw,
	})
	require.NoError(t, err)
}

func TestComputeCBLTwentyDayScenario(t *testing.T) {
	st := store.NewMemoryStore()
	days := priorWeekdays(eventDate, 20)
	for i, d := range days {
		offset := float64(i + 1)
		putSample(t, st, d, 16, 30, 10+offset)
		putSample(t, st, d, 18, 30, 15+offset)
	}

	engine := newTestEngine(t, st, testConfig())
	result, err := engine.ComputeCBL(eventAt(16, 20))
	require.NoError(t, err)

	// Per-day average is 12.5+offset; mean over offsets 1..20 is 23.0.
	assert.InDelta(t, 23.0, result.CBL1KW, 1e-9)
	assert.InDelta(t, 0.0, result.AdjustmentFactorKW, 1e-9)
	assert.InDelta(t, 23.0, result.CBLKW, 1e-9)
	assert.InDelta(t, result.CBL1PlusAFKW, result.CBL2KW, 1e-9) // cap inactive

	require.Len(t, result.BaselineSourceDays, 20)
	for i := 1; i < len(result.BaselineSourceDays); i++ {
		assert.True(t, result.BaselineSourceDays[i-1].Before(result.BaselineSourceDays[i]),
			"source days must be chronological")
	}

	// Determinism: a repeated call returns identical results.
	again, err := engine.ComputeCBL(eventAt(16, 20))
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestComputeCBLAdjustmentFactor(t *testing.T) {
	seed := func(todayOvernightKW float64) *Engine {
		st := store.NewMemoryStore()
		for _, d := range priorWeekdays(eventDate, 20) {
			putSample(t, st, d, 17, 0, 100)
			putSample(t, st, d, 22, 30, 50)
		}
		putSample(t, st, eventDate, 22, 30, todayOvernightKW)
		return newTestEngine(t, st, testConfig())
	}

	t.Run("upward drift is credited", func(t *testing.T) {
		result, err := seed(60).ComputeCBL(eventAt(16, 20))
		require.NoError(t, err)
		assert.InDelta(t, 50.0, result.HistAdjustAvgKW, 1e-9)
		assert.InDelta(t, 60.0, result.TodayAdjustAvgKW, 1e-9)
		assert.InDelta(t, 10.0, result.AdjustmentFactorKW, 1e-9)
		assert.InDelta(t, 110.0, result.CBLKW, 1e-9)
	})

	t.Run("downward drift is not", func(t *testing.T) {
		result, err := seed(40).ComputeCBL(eventAt(16, 20))
		require.NoError(t, err)
		assert.InDelta(t, 0.0, result.AdjustmentFactorKW, 1e-9)
		assert.InDelta(t, 100.0, result.CBLKW, 1e-9)
	})
}

func TestComputeCBLContractCap(t *testing.T) {
	st := store.NewMemoryStore()
	for _, d := range priorWeekdays(eventDate, 20) {
		putSample(t, st, d, 17, 0, 100)
	}
	engine := newTestEngine(t, st, testConfig())

	tests := []struct {
		name       string
		contractKW float64
		wantCBL    float64
		wantCBL2   float64
	}{
		{name: "cap below baseline binds", contractKW: 80, wantCBL: 80, wantCBL2: 80},
		{name: "cap above baseline is inert", contractKW: 150, wantCBL: 100, wantCBL2: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := eventAt(16, 20)
			event.ContractCapacityKW = &tt.contractKW
			result, err := engine.ComputeCBL(event)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantCBL, result.CBLKW, 1e-9)
			assert.InDelta(t, tt.wantCBL2, result.CBL2KW, 1e-9)
			// Cap invariant.
			assert.LessOrEqual(t, result.CBLKW, result.CBL1PlusAFKW)
		})
	}
}

func TestComputeCBLFailures(t *testing.T) {
	seeded := store.NewMemoryStore()
	for _, d := range priorWeekdays(eventDate, 20) {
		putSample(t, seeded, d, 17, 0, 100)
	}

	t.Run("invalid window", func(t *testing.T) {
		engine := newTestEngine(t, seeded, testConfig())
		_, err := engine.ComputeCBL(eventAt(16, 16))
		kind, ok := model.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, model.InvalidWindow, kind)
	})

	t.Run("out of season", func(t *testing.T) {
		engine := newTestEngine(t, seeded, testConfig())
		event := model.Event{
			CustomerID: "cust-1",
			Start:      time.Date(2024, time.December, 16, 16, 0, 0, 0, taipei),
			End:        time.Date(2024, time.December, 16, 20, 0, 0, 0, taipei),
		}
		_, err := engine.ComputeCBL(event)
		kind, ok := model.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, model.OutOfSeason, kind)
	})

	t.Run("no data", func(t *testing.T) {
		engine := newTestEngine(t, store.NewMemoryStore(), testConfig())
		_, err := engine.ComputeCBL(eventAt(16, 20))
		kind, ok := model.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, model.NoData, kind)
	})

	t.Run("insufficient baseline reports the count found", func(t *testing.T) {
		st := store.NewMemoryStore()
		for _, d := range priorWeekdays(eventDate, 5) {
			putSample(t, st, d, 17, 0, 100)
		}
		engine := newTestEngine(t, st, testConfig())
		_, err := engine.ComputeCBL(eventAt(16, 20))
		require.Error(t, err)

		var f *model.Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, model.InsufficientBaseline, f.Kind)
		assert.Contains(t, f.Message, "found only 5")
		assert.Equal(t, 5, f.Details["found"])
		assert.Equal(t, 20, f.Details["required"])
	})
}

func TestComputeCBLExclusions(t *testing.T) {
	// Seed every calendar day, including weekends and a designated
	// off-peak Wednesday; none of the excluded days may be selected.
	offPeak := timewin.Date{Year: 2024, Month: time.July, Day: 10} // Wednesday
	st := store.NewMemoryStore()
	d := eventDate.Prev()
	for i := 0; i < 45; i++ {
		putSample(t, st, d, 17, 0, 100)
		d = d.Prev()
	}

	cfg := testConfig()
	cfg.Calendar = timewin.NewCalendar(cfg.Calendar.SeasonStart, cfg.Calendar.SeasonEnd, []timewin.Date{offPeak})
	engine := newTestEngine(t, st, cfg)

	result, err := engine.ComputeCBL(eventAt(16, 20))
	require.NoError(t, err)
	require.Len(t, result.BaselineSourceDays, 20)

	for _, day := range result.BaselineSourceDays {
		wd := day.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
		assert.NotEqual(t, offPeak, day, "designated off-peak day must be excluded")
		assert.True(t, cfg.Calendar.InSeason(day))
	}
}

func TestEventDayAverage(t *testing.T) {
	st := store.NewMemoryStore()
	putSample(t, st, eventDate, 16, 30, 10)
	putSample(t, st, eventDate, 18, 30, 20)
	putSample(t, st, eventDate, 21, 0, 99) // outside window
	engine := newTestEngine(t, st, testConfig())

	assert.InDelta(t, 15.0, engine.EventDayAverage(eventAt(16, 20)), 1e-9)

	empty := newTestEngine(t, store.NewMemoryStore(), testConfig())
	assert.Zero(t, empty.EventDayAverage(eventAt(16, 20)))
}

func TestScanEligibility(t *testing.T) {
	// Small window to keep the fixture readable: scan the 7 days before
	// Monday 2024-07-15.
	cfg := testConfig()
	cfg.MinBaselineDays = 2
	cfg.SearchLimitDays = 7
	offPeak := timewin.Date{Year: 2024, Month: time.July, Day: 10} // Wednesday
	cfg.Calendar = timewin.NewCalendar(cfg.Calendar.SeasonStart, cfg.Calendar.SeasonEnd, []timewin.Date{offPeak})

	st := store.NewMemoryStore()
	putSample(t, st, timewin.Date{Year: 2024, Month: time.July, Day: 12}, 17, 0, 100) // Friday
	putSample(t, st, timewin.Date{Year: 2024, Month: time.July, Day: 11}, 17, 0, 100) // Thursday
	putSample(t, st, timewin.Date{Year: 2024, Month: time.July, Day: 10}, 17, 0, 100) // off-peak Wednesday
	// July 9 (Tuesday) has no samples; July 13/14 weekend; July 8 Monday no samples.

	engine := newTestEngine(t, st, cfg)
	rows, err := engine.ScanEligibility(eventAt(16, 20))
	require.NoError(t, err)
	require.Len(t, rows, 7)

	byDate := map[string]DayStatus{}
	for _, r := range rows {
		byDate[r.Date.String()] = r.Status
	}
	assert.Equal(t, DayWeekend, byDate["2024-07-14"])
	assert.Equal(t, DayWeekend, byDate["2024-07-13"])
	assert.Equal(t, DayQualified, byDate["2024-07-12"])
	assert.Equal(t, DayQualified, byDate["2024-07-11"])
	assert.Equal(t, DayOffPeak, byDate["2024-07-10"])
	assert.Equal(t, DayNoSamples, byDate["2024-07-09"])
	assert.Equal(t, DayNoSamples, byDate["2024-07-08"])

	assert.Equal(t, 2, QualifiedCount(rows))
}
