package app

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateSubscriptionICS(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateSubscriptionICS(w, testHolidays(), testStamp)

	resp := w.Result()
	body := w.Body.String()

	// Check status code
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/calendar") {
		t.Errorf("Expected Content-Type text/calendar, got %s", contentType)
	}

	// Subscriptions are served inline
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		t.Errorf("Subscription should not have Content-Disposition header, got: %s", cd)
	}

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//japan-info//Holidays//JA",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:日本の祝日\r\n",
		"X-PUBLISHED-TTL:P1D",
		"DTSTART;VALUE=DATE:20250811",
		"DTEND;VALUE=DATE:20250812",
		"SUMMARY:山の日",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS subscription output missing required field: %q", field)
		}
	}

	if strings.Contains(body, "BEGIN:VALARM") {
		t.Error("Subscription should not contain alarms")
	}
}

func TestHandleSubscribe(t *testing.T) {
	a := newTestApp(t, nil)
	a.Holidays = NewHolidayTable([]Holiday{
		{Name: "元日", Date: date(2023, 1, 1)},
		{Name: "元日", Date: date(2024, 1, 1)},
		{Name: "元日", Date: date(2025, 1, 1)},
		{Name: "元日", Date: date(2026, 1, 1)},
	})
	a.Now = func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, JST) }

	w := get(t, a.Handler(), "/api/holidays/subscribe")
	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()

	// last year onwards
	if strings.Contains(body, "DTSTART;VALUE=DATE:20230101") {
		t.Error("Feed should not include holidays before last year")
	}
	for _, d := range []string{"20240101", "20250101", "20260101"} {
		if !strings.Contains(body, "DTSTART;VALUE=DATE:"+d) {
			t.Errorf("Feed missing holiday on %s", d)
		}
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("Expected 3 events, got %d", n)
	}
}
