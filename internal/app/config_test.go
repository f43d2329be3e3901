package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ADDRESS", "127.0.0.1")
	t.Setenv("HOLIDAYS_FILE", "/etc/japan-info/holidays.json")
	t.Setenv("EXCHANGE_URL", "http://localhost:9000/latest/JPY")
	t.Setenv("EXCHANGE_TIMEOUT", "2s")
	t.Setenv("RATE_LIMIT", "0")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.HolidayFile != "/etc/japan-info/holidays.json" {
		t.Errorf("HolidayFile = %q", cfg.HolidayFile)
	}
	if cfg.ExchangeURL != "http://localhost:9000/latest/JPY" {
		t.Errorf("ExchangeURL = %q", cfg.ExchangeURL)
	}
	if cfg.ExchangeTimeout != 2*time.Second {
		t.Errorf("ExchangeTimeout = %s", cfg.ExchangeTimeout)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %d", cfg.RateLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "http"},
		{"PORT", "70000"},
		{"ADDRESS", "localhost"},
		{"EXCHANGE_URL", "ftp://example.com/rates"},
		{"EXCHANGE_URL", "open.er-api.com"},
		{"EXCHANGE_TIMEOUT", "5"},
		{"EXCHANGE_TIMEOUT", "-1s"},
		{"RATE_LIMIT", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := DefaultConfig()
			if err := ApplyEnv(&cfg); err == nil {
				t.Errorf("Expected an error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"relative URL", func(c *Config) { c.ExchangeURL = "/v6/latest/JPY" }},
		{"zero timeout", func(c *Config) { c.ExchangeTimeout = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)

	err := fs.Parse([]string{"-holidays", "custom.json", "-exchange-timeout", "750ms"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.HolidayFile != "custom.json" {
		t.Errorf("HolidayFile = %q", cfg.HolidayFile)
	}
	if cfg.ExchangeTimeout != 750*time.Millisecond {
		t.Errorf("ExchangeTimeout = %s", cfg.ExchangeTimeout)
	}
	if cfg.ExchangeURL != DefaultExchangeURL {
		t.Errorf("ExchangeURL changed without a flag: %q", cfg.ExchangeURL)
	}
}

func TestPeekOption(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-port", "80", "--envfile", "prod.env"}, "prod.env"},
		{[]string{"-envfile", "a.env"}, "a.env"},
		{[]string{"-envfile"}, ".env"},
		{nil, ".env"},
	}
	for _, tt := range tests {
		if got := PeekOption(tt.args, []string{"-envfile", "--envfile"}, ".env"); got != tt.want {
			t.Errorf("PeekOption(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Missing env file should be ignored, got %v", err)
	}

	const key = "JAPAN_INFO_TEST_ENVFILE"
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(key+"=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv(key); got != "loaded" {
		t.Errorf("%s = %q, want loaded", key, got)
	}
}
