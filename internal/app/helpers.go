package app

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// SortHolidaysByDate sorts holidays by date in ascending order
func SortHolidaysByDate(holidays []Holiday) {
	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
}

// WriteJSON encodes v as UTF-8 JSON without HTML escaping, so holiday names
// and labels are written as-is
func WriteJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// parseYear reads the optional year query parameter; ok is false when it is
// present but not a number
func parseYear(r *http.Request) (year int, set bool, ok bool) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		return 0, false, true
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, true, false
	}
	return year, true, true
}

func toViews(holidays []Holiday) []HolidayView {
	views := make([]HolidayView, 0, len(holidays))
	for _, h := range holidays {
		views = append(views, HolidayView{
			Name:  h.Name,
			Date:  h.Date.Format("2006-01-02"),
			Label: FormatHolidayDate(h.Date),
		})
	}
	return views
}
