package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klabast/wb-services/japan-info/internal/app"
	"github.com/klabast/wb-services/japan-info/internal/commands"
)

const name = "japan-info"

// set by ldflags
var version = "0.0.0-dev"

//go:embed data/holidays.json
var holidaysJSON []byte

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s v%s\n", name, version)
}

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "show":
			commands.Show(os.Args[2:], holidaysJSON)
			return
		case "-V", "version", "-version", "--version":
			printVersion(os.Stdout)
			return
		}
	}

	cfg := app.DefaultConfig()

	envPath := app.PeekOption(os.Args[1:], []string{"-envfile", "--envfile"}, ".env")
	if err := app.LoadEnvFile(envPath); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := app.ApplyEnv(&cfg); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	// Parse flags
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&cfg.Address, "address", cfg.Address, "Address to bind to")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per minute per client IP for /api/japan-info (0 disables)")
	_ = fs.String("envfile", ".env", "Load ENVs from this file")
	cfg.BindFlags(fs)
	fs.Usage = func() {
		out := fs.Output()
		_, _ = fmt.Fprintf(out, "USAGE\n")
		_, _ = fmt.Fprintf(out, "   %s [options]\n", name)
		_, _ = fmt.Fprintf(out, "   %s show [--date YYYY-MM-DD] [--no-rate]\n", name)
		_, _ = fmt.Fprintf(out, "   %s version\n\n", name)
		_, _ = fmt.Fprintf(out, "OPTIONS\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	holidays, err := app.LoadHolidays(cfg.HolidayFile, holidaysJSON)
	if err != nil {
		log.Fatalf("Failed to load holidays: %v", err)
	}

	rates := app.NewExchangeClient(cfg.ExchangeURL, cfg.ExchangeTimeout, cfg.Location)
	api := app.New(cfg, holidays, rates)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// the handler may wait ExchangeTimeout on the upstream
		WriteTimeout:   cfg.ExchangeTimeout + 10*time.Second,
		IdleTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 14,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	source := "built-in"
	if cfg.HolidayFile != "" {
		source = cfg.HolidayFile
	}
	log.Printf("Starting %s v%s on http://%s", name, version, cfg.Addr())
	log.Printf("Holidays: %d entries (%v, version %s)", holidays.Len(), source, holidays.Fingerprint())
	log.Printf("Exchange rates: %s (timeout %s)", cfg.ExchangeURL, cfg.ExchangeTimeout)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("Server stopped")
}
