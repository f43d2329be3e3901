package app

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// App holds everything the handlers need. It is built once at startup and
// never mutated afterwards.
type App struct {
	Config    Config
	Holidays  *HolidayTable
	Rates     RateSource
	Limiter   *RateLimiter
	Now       func() time.Time
	StartTime time.Time
}

// New creates an App serving holidays and quoting rates from rates
func New(cfg Config, holidays *HolidayTable, rates RateSource) *App {
	if cfg.Location == nil {
		cfg.Location = JST
	}
	return &App{
		Config:    cfg,
		Holidays:  holidays,
		Rates:     rates,
		Limiter:   NewRateLimiter(cfg.RateLimit, max(cfg.RateLimit/6, 1)),
		Now:       time.Now,
		StartTime: time.Now(),
	}
}

// Routes registers the API on mux
func (a *App) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/japan-info", a.Limiter.Limit(a.HandleJapanInfo))
	mux.HandleFunc("/api/holidays", a.HandleHolidays)
	mux.HandleFunc("/api/holidays/download", a.HandleDownload)
	mux.HandleFunc("/api/holidays/subscribe", a.HandleSubscribe)
	mux.HandleFunc("/api/status", a.HandleStatus)
}

// Handler returns the API as a single http.Handler
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	a.Routes(mux)
	return mux
}

// Today returns the current calendar date in the configured zone
func (a *App) Today() TodayContext {
	return NewTodayContext(a.Now(), a.Config.Location)
}

// HandleJapanInfo returns today's date, upcoming holidays, countdowns and the
// JPY→CNY rate. Upstream failures only null out the rate fields.
func (a *App) HandleJapanInfo(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	info := BuildJapanInfo(r.Context(), a.Today(), a.Holidays, a.Rates)
	WriteJSON(w, info)
}

// HandleHolidays lists the holiday table
// Query param: year (optional, defaults to every year)
func (a *App) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	year, set, ok := parseYear(r)
	if !ok {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	etag := `"` + a.Holidays.Fingerprint() + `"`
	holidays := a.Holidays.All()
	if set {
		etag = fmt.Sprintf(`"%s-%d"`, a.Holidays.Fingerprint(), year)
		holidays = a.Holidays.InYear(year)
	}

	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	WriteJSON(w, map[string]any{
		"version":  a.Holidays.Fingerprint(),
		"years":    a.Holidays.Years(),
		"holidays": toViews(holidays),
	})
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
// Query params: format (ics, csv, json), year (optional)
func (a *App) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	year, set, ok := parseYear(r)
	if !ok {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	label := "all"
	holidays := a.Holidays.All()
	if set {
		label = strconv.Itoa(year)
		holidays = a.Holidays.InYear(year)
	}

	switch r.URL.Query().Get("format") {
	case "ics":
		GenerateICS(w, label, holidays, a.Now())
	case "csv":
		GenerateCSV(w, label, holidays)
	case "json":
		GenerateJSONExport(w, label, holidays)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe returns an ICS feed with holidays from (current year - 1) onwards
func (a *App) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	minYear := a.Today().Date.Year() - 1
	GenerateSubscriptionICS(w, a.Holidays.Since(minYear), a.Now())
}

// HandleStatus reports uptime and which holiday table is loaded
func (a *App) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := a.Now().Sub(a.StartTime)
	WriteJSON(w, APIStatus{
		Uptime:       FormatDuration(uptime),
		Seconds:      uptime.Seconds(),
		Holidays:     a.Holidays.Len(),
		TableVersion: a.Holidays.Fingerprint(),
		ExchangeURL:  a.Config.ExchangeURL,
	})
}
