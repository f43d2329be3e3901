package app

import (
	"time"
)

const day = 24 * time.Hour

// CalendarDate truncates t to its calendar date (as seen in t's own location)
// and returns it as midnight UTC, so day arithmetic is never skewed by DST or
// the time of day
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewTodayContext derives the calendar date of now in loc
func NewTodayContext(now time.Time, loc *time.Location) TodayContext {
	if loc == nil {
		loc = JST
	}
	return TodayContext{
		Date:     CalendarDate(now.In(loc)),
		Location: loc,
	}
}

// DaysBetween returns the number of calendar days from today to target.
// It is negative when target is in the past.
func DaysBetween(today, target time.Time) int {
	return int(CalendarDate(target).Sub(CalendarDate(today)) / day)
}

// DaysToNextWeekend returns the days until the next Saturday, or 0 when today
// is already Saturday or Sunday
func DaysToNextWeekend(today time.Time) int {
	wd := today.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return 0
	}
	return int(time.Saturday - wd)
}

// DaysToMonthEnd returns the days until the last day of today's month
func DaysToMonthEnd(today time.Time) int {
	d := CalendarDate(today)
	firstOfNext := time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return DaysBetween(d, firstOfNext.AddDate(0, 0, -1))
}

// DaysToYearEnd returns the days until December 31 of today's year
func DaysToYearEnd(today time.Time) int {
	d := CalendarDate(today)
	return DaysBetween(d, time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC))
}

// DaysToHoliday returns the days until h, or nil when there is no holiday
func DaysToHoliday(today time.Time, h *Holiday) *int {
	if h == nil {
		return nil
	}
	n := DaysBetween(today, h.Date)
	return &n
}
