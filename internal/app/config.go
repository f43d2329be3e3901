package app

import (
	"errors"
	"flag"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Constants
const (
	DefaultAddress         = "0.0.0.0"
	DefaultPort            = 5000
	DefaultExchangeURL     = "https://open.er-api.com/v6/latest/JPY"
	DefaultExchangeTimeout = 5 * time.Second
	DefaultRateLimit       = 0 // requests per minute per client IP, 0 disables

	// Notional amount of JPY quoted in CNY
	Notional = 10000
	// Number of upcoming holidays reported
	UpcomingLimit = 3

	// Error messages
	ErrInvalidYear     = "Invalid year"
	ErrInvalidFormat   = "Invalid format"
	ErrInternalServer  = "Internal server error"
	ErrTooManyRequests = "Too many requests"

	// ICS constants
	ICSProductID = "-//japan-info//Holidays//JA"
	ICSTimezone  = "Asia/Tokyo"
	ICSDomain    = "japan-info.local"
)

// JST is the fixed zone every "today" is derived in. Japan observes no DST.
var JST = time.FixedZone("Asia/Tokyo", 9*60*60)

// Config is the process-wide configuration, built once at startup
type Config struct {
	Address         string
	Port            int
	HolidayFile     string
	ExchangeURL     string
	ExchangeTimeout time.Duration
	RateLimit       int
	Location        *time.Location
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Address:         DefaultAddress,
		Port:            DefaultPort,
		ExchangeURL:     DefaultExchangeURL,
		ExchangeTimeout: DefaultExchangeTimeout,
		RateLimit:       DefaultRateLimit,
		Location:        JST,
	}
}

// Addr returns the host:port the server listens on
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

// BindFlags registers the exchange and holiday options on fs, defaulting to
// the current values of c
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.HolidayFile, "holidays", c.HolidayFile, "Load the holiday table from this JSON file instead of the built-in one")
	fs.StringVar(&c.ExchangeURL, "exchange-url", c.ExchangeURL, "Currency conversion endpoint returning rates for JPY")
	fs.DurationVar(&c.ExchangeTimeout, "exchange-timeout", c.ExchangeTimeout, "Timeout for the exchange rate request")
}

// PeekOption returns the value following any of flags in args, before the
// flag set is parsed
func PeekOption(args []string, flags []string, defaultOpt string) string {
	n := len(args)
	for i := 0; i < n; i++ {
		if slices.Contains(flags, args[i]) {
			if i+1 < n {
				return args[i+1]
			}
			break
		}
	}

	return defaultOpt
}

// LoadEnvFile loads ENVs from path. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with ADDRESS, PORT, HOLIDAYS_FILE, EXCHANGE_URL,
// EXCHANGE_TIMEOUT and RATE_LIMIT when they are set
func ApplyEnv(cfg *Config) error {
	if envPort := os.Getenv("PORT"); envPort != "" {
		p, err := strconv.Atoi(envPort)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid PORT environment variable value: %q", envPort)
		}
		cfg.Port = p
	}
	if envAddress := os.Getenv("ADDRESS"); envAddress != "" {
		if _, err := netip.ParseAddr(envAddress); err != nil {
			return fmt.Errorf("invalid ADDRESS environment variable value: %q", envAddress)
		}
		cfg.Address = envAddress
	}
	if envFile := os.Getenv("HOLIDAYS_FILE"); envFile != "" {
		cfg.HolidayFile = envFile
	}
	if envURL := os.Getenv("EXCHANGE_URL"); envURL != "" {
		if err := validateExchangeURL(envURL); err != nil {
			return fmt.Errorf("invalid EXCHANGE_URL environment variable value: %q", envURL)
		}
		cfg.ExchangeURL = envURL
	}
	if envTimeout := os.Getenv("EXCHANGE_TIMEOUT"); envTimeout != "" {
		d, err := time.ParseDuration(envTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid EXCHANGE_TIMEOUT environment variable value: %q", envTimeout)
		}
		cfg.ExchangeTimeout = d
	}
	if envLimit := os.Getenv("RATE_LIMIT"); envLimit != "" {
		n, err := strconv.Atoi(envLimit)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid RATE_LIMIT environment variable value: %q", envLimit)
		}
		cfg.RateLimit = n
	}

	return nil
}

// Validate checks values that may have come from flags
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if err := validateExchangeURL(c.ExchangeURL); err != nil {
		return err
	}
	if c.ExchangeTimeout <= 0 {
		return fmt.Errorf("exchange timeout must be positive, got %s", c.ExchangeTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.RateLimit)
	}
	return nil
}

func validateExchangeURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid exchange URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid exchange URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid exchange URL %q: missing host", raw)
	}
	return nil
}
