package baseline

import (
	"dr-baseline/internal/model"
	"dr-baseline/internal/timewin"
)

// DayStatus explains why a candidate day did or did not qualify.
type DayStatus string

const (
	DayQualified   DayStatus = "QUALIFIED"
	DayWeekend     DayStatus = "WEEKEND"
	DayOffPeak     DayStatus = "OFF_PEAK"
	DayOutOfSeason DayStatus = "OUT_OF_SEASON"
	DayNoSamples   DayStatus = "NO_SAMPLES"
)

// DayEligibility is one row of the qualification scan.
type DayEligibility struct {
	Date        timewin.Date
	Status      DayStatus
	SampleCount int
	WindowAvgKW float64
}

// ScanEligibility examines every day the baseline search would walk and
// reports each day's qualification status. It applies the same window,
// season, and data prechecks as ComputeCBL but never fails on an
// insufficient count; the point is to show what the search saw.
func (e *Engine) ScanEligibility(event model.Event) ([]DayEligibility, error) {
	event = event.Normalize(e.cfg.Location)
	if err := event.Validate(); err != nil {
		return nil, err
	}

	eventDate := timewin.DateOf(event.Start)
	samples := e.source.SamplesFor(event.CustomerID)
	if len(samples) == 0 {
		return nil, model.NewFailure(model.NoData, "no meter data for customer %q", event.CustomerID)
	}

	window := timewin.Window{
		Start: timewin.ClockOf(event.Start),
		End:   timewin.ClockOf(event.End),
	}
	cal := e.cfg.Calendar

	out := make([]DayEligibility, 0, e.cfg.SearchLimitDays)
	day := eventDate.Prev()
	for searched := 0; searched < e.cfg.SearchLimitDays; searched++ {
		row := DayEligibility{Date: day}
		inWindow := timewin.Filter(samples, e.cfg.Location, day, window)
		row.SampleCount = len(inWindow)
		row.WindowAvgKW, _ = timewin.AverageKW(inWindow)

		switch {
		case cal.IsWeekend(day):
			row.Status = DayWeekend
		case cal.IsOffPeak(day):
			row.Status = DayOffPeak
		case !cal.InSeason(day):
			row.Status = DayOutOfSeason
		case len(inWindow) == 0:
			row.Status = DayNoSamples
		default:
			row.Status = DayQualified
		}

		out = append(out, row)
		day = day.Prev()
	}
	return out, nil
}

// QualifiedCount tallies the qualifying rows of a scan.
func QualifiedCount(rows []DayEligibility) int {
	n := 0
	for _, r := range rows {
		if r.Status == DayQualified {
			n++
		}
	}
	return n
}
