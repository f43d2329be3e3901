package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(ICSDomain))

// writeLine writes one CRLF-terminated content line and logs any error
func writeLine(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format+"\r\n", args...); err != nil {
		log.Printf("Error writing to response: %v", err)
	}
}

// escapeICSText escapes a TEXT value per RFC 5545
func escapeICSText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}

// holidayUID is stable across exports so calendar apps can update in place
func holidayUID(h Holiday) string {
	key := h.Date.Format("2006-01-02") + "\t" + h.Name
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@" + ICSDomain
}

func writeEvent(w io.Writer, h Holiday, stamp time.Time) {
	writeLine(w, "BEGIN:VEVENT")
	writeLine(w, "UID:%s", holidayUID(h))
	writeLine(w, "DTSTAMP:%s", stamp.UTC().Format("20060102T150405Z"))
	writeLine(w, "DTSTART;VALUE=DATE:%s", h.Date.Format("20060102"))
	writeLine(w, "DTEND;VALUE=DATE:%s", h.Date.AddDate(0, 0, 1).Format("20060102"))
	writeLine(w, "SUMMARY:%s", escapeICSText(h.Name))
	writeLine(w, "TRANSP:TRANSPARENT")
	writeLine(w, "END:VEVENT")
}

// GenerateICS writes holidays as a downloadable iCalendar file of all-day events
func GenerateICS(w http.ResponseWriter, label string, holidays []Holiday, stamp time.Time) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=japan_holidays_%s.ics", label))

	writeLine(w, "BEGIN:VCALENDAR")
	writeLine(w, "VERSION:2.0")
	writeLine(w, "PRODID:%s", ICSProductID)
	writeLine(w, "X-WR-CALNAME:日本の祝日 %s", label)
	writeLine(w, "X-WR-TIMEZONE:%s", ICSTimezone)
	writeLine(w, "CALSCALE:GREGORIAN")
	for _, h := range holidays {
		writeEvent(w, h, stamp)
	}
	writeLine(w, "END:VCALENDAR")
}

// GenerateSubscriptionICS writes an iCalendar feed meant to be subscribed to:
// inline, METHOD:PUBLISH, with a refresh hint
func GenerateSubscriptionICS(w http.ResponseWriter, holidays []Holiday, stamp time.Time) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	writeLine(w, "BEGIN:VCALENDAR")
	writeLine(w, "VERSION:2.0")
	writeLine(w, "PRODID:%s", ICSProductID)
	writeLine(w, "METHOD:PUBLISH")
	writeLine(w, "X-WR-CALNAME:日本の祝日")
	writeLine(w, "X-WR-TIMEZONE:%s", ICSTimezone)
	writeLine(w, "CALSCALE:GREGORIAN")
	writeLine(w, "X-PUBLISHED-TTL:P1D")
	for _, h := range holidays {
		writeEvent(w, h, stamp)
	}
	writeLine(w, "END:VCALENDAR")
}

// GenerateCSV writes holidays as CSV
func GenerateCSV(w http.ResponseWriter, label string, holidays []Holiday) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=japan_holidays_%s.csv", label))

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	rows := [][]string{{"date", "weekday", "name"}}
	for _, h := range holidays {
		rows = append(rows, []string{h.Date.Format("2006-01-02"), WeekdayJA(h.Date.Weekday()), h.Name})
	}
	if err := cw.WriteAll(rows); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}

// GenerateJSONExport writes holidays as a downloadable JSON document
func GenerateJSONExport(w http.ResponseWriter, label string, holidays []Holiday) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=japan_holidays_%s.json", label))

	WriteJSON(w, map[string]any{
		"label":    label,
		"holidays": toViews(holidays),
	})
}
