package app

import (
	"context"
	"encoding/json"
)

// BuildJapanInfo assembles the response for today. Every date-derived field is
// computed from the same TodayContext. Pass a nil interface as rates to skip
// the rate; a typed nil pointer wrapped in RateSource is not detected.
func BuildJapanInfo(ctx context.Context, today TodayContext, holidays *HolidayTable, rates RateSource) JapanInfo {
	d := today.Date
	upcoming := holidays.Upcoming(d, UpcomingLimit)

	info := JapanInfo{
		Today:          FormatToday(d),
		DaysToWeekend:  DaysToNextWeekend(d),
		DaysToMonthEnd: DaysToMonthEnd(d),
		DaysToYearEnd:  DaysToYearEnd(d),
	}

	names := [UpcomingLimit]*string{&info.NextHoliday1Name, &info.NextHoliday2Name, &info.NextHoliday3Name}
	dates := [UpcomingLimit]*string{&info.NextHoliday1Date, &info.NextHoliday2Date, &info.NextHoliday3Date}
	for i, h := range upcoming {
		*names[i] = h.Name
		*dates[i] = FormatHolidayDate(h.Date)
	}
	if len(upcoming) > 0 {
		info.DaysToNext = DaysToHoliday(d, &upcoming[0])
	}

	if rates != nil {
		if quote := rates.Lookup(ctx); quote.Available() {
			rate := json.Number(quote.Rate.String())
			observed := FormatObservedAt(quote.ObservedAt, today.Location)
			info.JPYToCNY = &rate
			info.ExchangeUpdateTime = &observed
		}
	}

	return info
}
