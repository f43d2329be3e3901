package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildJapanInfoRates(t *testing.T) {
	holidays := NewHolidayTable([]Holiday{{Name: "海の日", Date: date(2025, 7, 21)}})
	today := NewTodayContext(testNow, JST)

	tests := []struct {
		name     string
		rates    RateSource
		wantRate string
		wantTime string
	}{
		{"nil source skips the rate", nil, "", ""},
		{"unavailable quote", &stubRates{}, "", ""},
		{
			name: "available quote",
			rates: &stubRates{quote: Quote{
				Rate:       decimal.RequireFromString("487"),
				ObservedAt: time.Date(2025, 7, 1, 0, 5, 0, 0, time.UTC),
			}},
			wantRate: "487",
			wantTime: "2025-07-01 09:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := BuildJapanInfo(context.Background(), today, holidays, tt.rates)

			if tt.wantRate == "" {
				if info.JPYToCNY != nil || info.ExchangeUpdateTime != nil {
					t.Errorf("Expected no rate, got %v at %v", info.JPYToCNY, info.ExchangeUpdateTime)
				}
			} else {
				if info.JPYToCNY == nil || info.JPYToCNY.String() != tt.wantRate {
					t.Errorf("JPYToCNY = %v, want %s", info.JPYToCNY, tt.wantRate)
				}
				if info.ExchangeUpdateTime == nil || *info.ExchangeUpdateTime != tt.wantTime {
					t.Errorf("ExchangeUpdateTime = %v, want %s", info.ExchangeUpdateTime, tt.wantTime)
				}
			}
			if info.DaysToNext == nil || *info.DaysToNext != 20 {
				t.Errorf("DaysToNext = %v, want 20", info.DaysToNext)
			}
		})
	}
}
