package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUpstreamStatus = errors.New("unexpected upstream status")
	ErrUpstreamResult = errors.New("upstream reported failure")
	ErrRateMissing    = errors.New("CNY rate missing from upstream response")
)

// maxUpstreamBody caps how much of the provider's response is read
const maxUpstreamBody = 1 << 20

// Quote is the value of Notional JPY in CNY at ObservedAt.
// The zero Quote means the rate is unavailable.
type Quote struct {
	Rate       decimal.Decimal
	ObservedAt time.Time
}

// Available reports whether q carries a rate
func (q Quote) Available() bool {
	return !q.ObservedAt.IsZero()
}

// RateSource looks up the current quote, never failing: an unavailable quote
// is returned instead
type RateSource interface {
	Lookup(ctx context.Context) Quote
}

// latestRates is the subset of the open.er-api.com /v6/latest payload we read
type latestRates struct {
	Result string                     `json:"result"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// ExchangeClient fetches the JPY→CNY rate from a currency conversion API
type ExchangeClient struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	Location   *time.Location
	Now        func() time.Time
}

// NewExchangeClient creates a client for url bounded by timeout
func NewExchangeClient(url string, timeout time.Duration, loc *time.Location) *ExchangeClient {
	if loc == nil {
		loc = JST
	}
	return &ExchangeClient{
		URL:        url,
		Timeout:    timeout,
		HTTPClient: &http.Client{Timeout: timeout},
		Location:   loc,
		Now:        time.Now,
	}
}

// Fetch issues a single GET and extracts the rate for Notional JPY, rounded
// to 2 decimal places
func (c *ExchangeClient) Fetch(ctx context.Context) (Quote, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing exchange response: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Quote{}, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	var body latestRates
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBody)).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("failed to decode exchange response: %w", err)
	}
	if body.Result != "" && body.Result != "success" {
		return Quote{}, fmt.Errorf("%w: result=%q", ErrUpstreamResult, body.Result)
	}

	rate, ok := body.Rates["CNY"]
	if !ok || !rate.IsPositive() {
		return Quote{}, ErrRateMissing
	}

	return Quote{
		Rate:       rate.Mul(decimal.NewFromInt(Notional)).Round(2),
		ObservedAt: c.Now().In(c.Location),
	}, nil
}

// Lookup is Fetch with failures logged and collapsed into an unavailable Quote
func (c *ExchangeClient) Lookup(ctx context.Context) Quote {
	quote, err := c.Fetch(ctx)
	if err != nil {
		log.Printf("⚠️  Exchange rate unavailable: %v", err)
		return Quote{}
	}
	return quote
}
