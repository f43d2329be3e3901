package app

import (
	"encoding/json"
	"time"
)

// Holiday represents a single public holiday
type Holiday struct {
	Name string    `json:"name"`
	Date time.Time `json:"-"`
}

// holidayRecord is the on-disk shape of a holiday in the data file
type holidayRecord struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// TodayContext is the calendar date every field of a response is computed against
type TodayContext struct {
	Date     time.Time
	Location *time.Location
}

// JapanInfo is the flat response body of /api/japan-info
type JapanInfo struct {
	Today              string       `json:"today"`
	NextHoliday1Name   string       `json:"next_holiday_1_name"`
	NextHoliday1Date   string       `json:"next_holiday_1_date"`
	NextHoliday2Name   string       `json:"next_holiday_2_name"`
	NextHoliday2Date   string       `json:"next_holiday_2_date"`
	NextHoliday3Name   string       `json:"next_holiday_3_name"`
	NextHoliday3Date   string       `json:"next_holiday_3_date"`
	DaysToNext         *int         `json:"days_to_next"`
	DaysToWeekend      int          `json:"days_to_weekend"`
	DaysToMonthEnd     int          `json:"days_to_month_end"`
	DaysToYearEnd      int          `json:"days_to_year_end"`
	JPYToCNY           *json.Number `json:"jpy_to_cny"`
	ExchangeUpdateTime *string      `json:"exchange_update_time"`
}

// HolidayView is a holiday as listed by /api/holidays
type HolidayView struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Label string `json:"label"`
}

// APIStatus is the response body of /api/status
type APIStatus struct {
	Uptime       string  `json:"uptime"`
	Seconds      float64 `json:"seconds"`
	Holidays     int     `json:"holidays"`
	TableVersion string  `json:"table_version"`
	ExchangeURL  string  `json:"exchange_url"`
}
