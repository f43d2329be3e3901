package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/klabast/wb-services/japan-info/internal/app"
)

// Show handles the show subcommand: it prints what /api/japan-info would
// return, without starting a server
func Show(args []string, embedded []byte) {
	cfg := app.DefaultConfig()
	envPath := app.PeekOption(args, []string{"-envfile", "--envfile"}, ".env")
	if err := app.LoadEnvFile(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := app.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Parse flags for show subcommand
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	dateStr := fs.String("date", "", "Use this date (YYYY-MM-DD) as today instead of the current date")
	noRate := fs.Bool("no-rate", false, "Skip the exchange rate request")
	asJSON := fs.Bool("json", false, "Always print compact JSON, even on a terminal")
	_ = fs.String("envfile", ".env", "Load ENVs from this file")
	cfg.BindFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: japan-info show [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Prints today's dates, upcoming holidays and the JPY→CNY rate.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	if *dateStr != "" {
		d, err := time.ParseInLocation("2006-01-02", *dateStr, cfg.Location)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid date %q: expected YYYY-MM-DD\n", *dateStr)
			os.Exit(1)
		}
		now = d
	}

	holidays, err := app.LoadHolidays(cfg.HolidayFile, embedded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var rates app.RateSource
	if !*noRate {
		rates = app.NewExchangeClient(cfg.ExchangeURL, cfg.ExchangeTimeout, cfg.Location)
	}

	info := app.BuildJapanInfo(context.Background(), app.NewTodayContext(now, cfg.Location), holidays, rates)

	pretty := !*asJSON && term.IsTerminal(int(os.Stdout.Fd()))
	if err := Render(os.Stdout, info, pretty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Render writes info as aligned, colored key/value lines when pretty is
// set, and as a single line of JSON otherwise
func Render(w io.Writer, info app.JapanInfo, pretty bool) error {
	if !pretty {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(info)
	}

	key := color.New(color.FgCyan)
	missing := color.New(color.Faint)
	for _, f := range fields(info) {
		if _, err := key.Fprintf(w, "%-22s", f.key); err != nil {
			return err
		}
		var err error
		if f.value == "" {
			_, err = missing.Fprintln(w, "-")
		} else {
			_, err = fmt.Fprintln(w, f.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type field struct {
	key   string
	value string
}

// fields lists info in the same order as the JSON response
func fields(info app.JapanInfo) []field {
	optInt := func(n *int) string {
		if n == nil {
			return ""
		}
		return strconv.Itoa(*n)
	}
	optStr := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	rate := ""
	if info.JPYToCNY != nil {
		rate = info.JPYToCNY.String()
	}

	return []field{
		{"today", info.Today},
		{"next_holiday_1_name", info.NextHoliday1Name},
		{"next_holiday_1_date", info.NextHoliday1Date},
		{"next_holiday_2_name", info.NextHoliday2Name},
		{"next_holiday_2_date", info.NextHoliday2Date},
		{"next_holiday_3_name", info.NextHoliday3Name},
		{"next_holiday_3_date", info.NextHoliday3Date},
		{"days_to_next", optInt(info.DaysToNext)},
		{"days_to_weekend", strconv.Itoa(info.DaysToWeekend)},
		{"days_to_month_end", strconv.Itoa(info.DaysToMonthEnd)},
		{"days_to_year_end", strconv.Itoa(info.DaysToYearEnd)},
		{"jpy_to_cny", rate},
		{"exchange_update_time", optStr(info.ExchangeUpdateTime)},
	}
}
