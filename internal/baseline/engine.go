package baseline

import (
	"errors"
	"sort"
	"time"

	"dr-baseline/internal/model"
	"dr-baseline/internal/store"
	"dr-baseline/internal/timewin"
)

// Config holds the selection parameters for the day-select CBL.
type Config struct {
	// Location is the one canonical local timezone; every sample and
	// event timestamp is normalized to it before comparison.
	Location *time.Location

	// MinBaselineDays qualifying days are required (default 20).
	MinBaselineDays int
	// SearchLimitDays bounds the backward walk (default 90); every
	// examined day counts against the limit, qualifying or not.
	SearchLimitDays int

	Calendar timewin.Calendar

	// AdjustWindow is the fixed overnight reference window for the
	// load-adjustment factor (22:00-00:00, cross-midnight).
	AdjustWindow timewin.Window
}

func (c Config) Validate() error {
	if c.Location == nil {
		return errors.New("baseline config: Location is required")
	}
	if c.MinBaselineDays <= 0 {
		return errors.New("baseline config: MinBaselineDays must be > 0")
	}
	if c.SearchLimitDays < c.MinBaselineDays {
		return errors.New("baseline config: SearchLimitDays must be >= MinBaselineDays")
	}
	return nil
}

// Engine computes Customer Baseline Loads from an injected read-only
// sample source. It holds no mutable state; a single Engine serves
// concurrent requests.
type Engine struct {
	cfg    Config
	source store.SampleSource
}

func New(source store.SampleSource, cfg Config) (*Engine, error) {
	if source == nil {
		return nil, errors.New("sample source is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, source: source}, nil
}

func (e *Engine) Config() Config { return e.cfg }

// ComputeCBL derives the capped baseline for one event. The computation
// is all-or-nothing: any failure aborts with a typed error and no
// partial result.
func (e *Engine) ComputeCBL(event model.Event) (*Result, error) {
	event = event.Normalize(e.cfg.Location)
	if err := event.Validate(); err != nil {
		return nil, err
	}

	eventDate := timewin.DateOf(event.Start)
	if !e.cfg.Calendar.InSeason(eventDate) {
		return nil, model.NewFailure(model.OutOfSeason,
			"event date %s is outside the active season (%s to %s)",
			eventDate, e.cfg.Calendar.SeasonStart, e.cfg.Calendar.SeasonEnd)
	}

	samples := e.source.SamplesFor(event.CustomerID)
	if len(samples) == 0 {
		return nil, model.NewFailure(model.NoData, "no meter data for customer %q", event.CustomerID)
	}

	window := timewin.Window{
		Start: timewin.ClockOf(event.Start),
		End:   timewin.ClockOf(event.End),
	}

	days, err := e.findBaselineDays(samples, eventDate, window)
	if err != nil {
		return nil, err
	}

	// CBL1: mean of the per-day event-window averages, equal weight per
	// day regardless of sample count.
	var dayAvgs []float64
	for _, d := range days {
		if avg, ok := timewin.AverageKW(timewin.Filter(samples, e.cfg.Location, d, window)); ok {
			dayAvgs = append(dayAvgs, avg)
		}
	}
	cbl1 := mean(dayAvgs)

	// Load-adjustment factor: overnight reference window across the
	// qualifying days vs. the event date itself. Only upward drift is
	// credited.
	var histAvgs []float64
	for _, d := range days {
		if avg, ok := timewin.AverageKW(timewin.Filter(samples, e.cfg.Location, d, e.cfg.AdjustWindow)); ok {
			histAvgs = append(histAvgs, avg)
		}
	}
	histAdjust := mean(histAvgs)

	todayAdjust, _ := timewin.AverageKW(timewin.Filter(samples, e.cfg.Location, eventDate, e.cfg.AdjustWindow))

	af := todayAdjust - histAdjust
	if af < 0 {
		af = 0
	}

	cbl1PlusAF := cbl1 + af
	cbl2 := cbl1PlusAF
	if event.ContractCapacityKW != nil {
		cbl2 = *event.ContractCapacityKW
	}
	cbl := cbl1PlusAF
	if cbl2 < cbl {
		cbl = cbl2
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return &Result{
		CustomerID:         event.CustomerID,
		EventStart:         event.Start,
		EventEnd:           event.End,
		CBLKW:              cbl,
		BaselineSourceDays: days,
		CBL1KW:             cbl1,
		AdjustmentFactorKW: af,
		CBL1PlusAFKW:       cbl1PlusAF,
		CBL2KW:             cbl2,
		HistAdjustAvgKW:    histAdjust,
		TodayAdjustAvgKW:   todayAdjust,
	}, nil
}

// findBaselineDays walks backward from the day before the event,
// collecting qualifying days until enough are found or the search limit
// is exhausted.
func (e *Engine) findBaselineDays(samples []model.DemandSample, eventDate timewin.Date, window timewin.Window) ([]timewin.Date, error) {
	var days []timewin.Date
	day := eventDate.Prev()
	for searched := 0; len(days) < e.cfg.MinBaselineDays && searched < e.cfg.SearchLimitDays; searched++ {
		if e.qualifies(samples, day, window) {
			days = append(days, day)
		}
		day = day.Prev()
	}
	if len(days) < e.cfg.MinBaselineDays {
		f := model.NewFailure(model.InsufficientBaseline,
			"need %d qualifying baseline days within the trailing %d days, found only %d",
			e.cfg.MinBaselineDays, e.cfg.SearchLimitDays, len(days))
		f.Details = map[string]interface{}{
			"required": e.cfg.MinBaselineDays,
			"found":    len(days),
		}
		return nil, f
	}
	return days, nil
}

func (e *Engine) qualifies(samples []model.DemandSample, d timewin.Date, window timewin.Window) bool {
	cal := e.cfg.Calendar
	if cal.IsWeekend(d) || cal.IsOffPeak(d) || !cal.InSeason(d) {
		return false
	}
	return len(timewin.Filter(samples, e.cfg.Location, d, window)) > 0
}

// EventDayAverage returns the average demand inside the event's own
// window on the event date, or 0 when the customer recorded nothing
// there. The reward engine uses this for the actual consumption.
func (e *Engine) EventDayAverage(event model.Event) float64 {
	event = event.Normalize(e.cfg.Location)
	window := timewin.Window{
		Start: timewin.ClockOf(event.Start),
		End:   timewin.ClockOf(event.End),
	}
	samples := e.source.SamplesFor(event.CustomerID)
	avg, _ := timewin.AverageKW(timewin.Filter(samples, e.cfg.Location, timewin.DateOf(event.Start), window))
	return avg
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
