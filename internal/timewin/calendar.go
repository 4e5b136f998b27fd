package timewin

import "time"

// Calendar holds the date-eligibility rules for baseline day selection:
// the active season bounds and the off-peak day set. Off-peak days are
// the supplied special dates plus every Sunday.
type Calendar struct {
	SeasonStart MonthDay
	SeasonEnd   MonthDay
	OffPeakDays map[Date]struct{}
}

// NewCalendar builds a calendar from season bounds and special off-peak dates.
func NewCalendar(seasonStart, seasonEnd MonthDay, offPeak []Date) Calendar {
	set := make(map[Date]struct{}, len(offPeak))
	for _, d := range offPeak {
		set[d] = struct{}{}
	}
	return Calendar{SeasonStart: seasonStart, SeasonEnd: seasonEnd, OffPeakDays: set}
}

func (c Calendar) IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (c Calendar) IsOffPeak(d Date) bool {
	if _, ok := c.OffPeakDays[d]; ok {
		return true
	}
	return d.Weekday() == time.Sunday
}

// InSeason reports whether d falls inside the active season, compared by
// month and day (not calendar-day count).
func (c Calendar) InSeason(d Date) bool {
	return d.onOrAfter(c.SeasonStart) && d.onOrBefore(c.SeasonEnd)
}
