package timewin

import (
	"fmt"
	"strings"
	"time"

	"dr-baseline/internal/model"
)

// Clock is a time of day expressed as minutes since local midnight.
type Clock int

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return Clock(h*60 + m), nil
}

func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a local time-of-day window. Start >= End means the window
// wraps across midnight (e.g. 22:00-00:00).
type Window struct {
	Start Clock
	End   Clock
}

func (w Window) CrossesMidnight() bool {
	return w.Start >= w.End
}

// FilterSameDay selects samples whose local date equals d and whose
// local time lies in [w.Start, w.End).
func FilterSameDay(samples []model.DemandSample, loc *time.Location, d Date, w Window) []model.DemandSample {
	var matched []model.DemandSample
	for _, s := range samples {
		ts := s.Timestamp.In(loc)
		if DateOf(ts) != d {
			continue
		}
		c := ClockOf(ts)
		if c >= w.Start && c < w.End {
			matched = append(matched, s)
		}
	}
	return matched
}

// FilterCrossMidnight selects samples for a window spanning 24:00:
// (local date == d AND local time >= w.Start) OR
// (local date == d+1 AND local time < w.End).
// With End == 00:00 the next-day branch matches nothing.
func FilterCrossMidnight(samples []model.DemandSample, loc *time.Location, d Date, w Window) []model.DemandSample {
	next := d.Next()
	var matched []model.DemandSample
	for _, s := range samples {
		ts := s.Timestamp.In(loc)
		date := DateOf(ts)
		c := ClockOf(ts)
		if date == d && c >= w.Start {
			matched = append(matched, s)
		}
		if date == next && c < w.End {
			matched = append(matched, s)
		}
	}
	return matched
}

// Filter picks the same-day or cross-midnight variant based on the
// window's shape, so one rule applies everywhere a window is evaluated.
func Filter(samples []model.DemandSample, loc *time.Location, d Date, w Window) []model.DemandSample {
	if w.CrossesMidnight() {
		return FilterCrossMidnight(samples, loc, d, w)
	}
	return FilterSameDay(samples, loc, d, w)
}

// AverageKW returns the mean demand of samples, and false when empty.
func AverageKW(samples []model.DemandSample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range samples {
		sum += s.DemandKW
	}
	return sum / float64(len(samples)), true
}
