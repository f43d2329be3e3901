package app

import (
	"fmt"
	"time"
)

// weekdayNames are the one-character Japanese weekday labels, Sunday first
var weekdayNames = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// WeekdayJA returns the Japanese label for wd
func WeekdayJA(wd time.Weekday) string {
	return weekdayNames[wd%7]
}

// FormatToday formats a date like 2025年7月1日（火）
func FormatToday(d time.Time) string {
	return fmt.Sprintf("%d年%d月%d日（%s）", d.Year(), int(d.Month()), d.Day(), WeekdayJA(d.Weekday()))
}

// FormatHolidayDate formats a date like 7月21日（月）
func FormatHolidayDate(d time.Time) string {
	return fmt.Sprintf("%d月%d日（%s）", int(d.Month()), d.Day(), WeekdayJA(d.Weekday()))
}

// FormatObservedAt formats an observation timestamp in loc
func FormatObservedAt(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = JST
	}
	return t.In(loc).Format("2006-01-02 15:04")
}
