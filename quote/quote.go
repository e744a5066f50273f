// Package quote fetches the latest price of a ticker from online quote
// services.
//
// Every service is a Provider selected by name with New. A Provider never
// fails: a network, status or parse failure is logged at debug level and
// reported as a missing price.
package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Names of the available providers.
const (
	AlphaVantage    = "alphavantage"
	Finnhub         = "finnhub"
	AlphaVantageMCP = "alphavantage-mcp"

	// Default is the provider used when none is configured.
	Default = AlphaVantageMCP
)

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown quote provider")

// Provider returns the latest price of a ticker.
type Provider interface {
	// Name of the provider, as accepted by New.
	Name() string
	// Price returns the latest price of ticker, or false if there is none.
	Price(ctx context.Context, ticker string) (float64, bool)
	// Pacing is the delay the service requires between two calls.
	Pacing() time.Duration
}

// Config holds the settings shared by all providers.
type Config struct {
	// APIKey is the credential sent to the service.
	APIKey string
	// BaseURL replaces the service endpoint when set.
	BaseURL string
	// Client used for requests, a client with a 30s timeout if nil.
	Client *http.Client
	Logger zerolog.Logger
}

// Names returns the names accepted by New.
func Names() []string { return []string{AlphaVantage, Finnhub, AlphaVantageMCP} }

// New returns the provider called name.
func New(name string, cfg Config) (Provider, error) {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	log := cfg.Logger.With().Str("component", "quote").Str("provider", name).Logger()
	switch name {
	case AlphaVantage:
		return newAlphaVantage(cfg, log), nil
	case Finnhub:
		return newFinnhub(cfg, log), nil
	case AlphaVantageMCP:
		return newMCP(cfg, log), nil
	}
	return nil, fmt.Errorf("%w: %q, want one of %s", ErrUnknownProvider, name, strings.Join(Names(), ", "))
}

// APIKey returns the key from the environment variable CARTERA_API_KEY,
// or from the service specific one (ALPHAVANTAGE_API_KEY or FINNHUB_API_KEY).
func APIKey(name string) string {
	if key := os.Getenv("CARTERA_API_KEY"); key != "" {
		return key
	}
	switch name {
	case AlphaVantage, AlphaVantageMCP:
		return os.Getenv("ALPHAVANTAGE_API_KEY")
	case Finnhub:
		return os.Getenv("FINNHUB_API_KEY")
	}
	return ""
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	body, err := do(client, req)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

// jwpost sends payload as JSON in an HTTP POST request and returns the response body.
func jwpost(ctx context.Context, client *http.Client, addr string, payload any) ([]byte, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	return do(client, req)
}

func do(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http %v %v%v: %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// lookup evaluates path on jobj. It returns nil if the path does not match.
func lookup(path string, jobj any) any {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil
		}
		jval = jlist[0]
	}
	return jval
}

// parsePrice reads a price sent as a JSON number or a string.
// Only strictly positive and finite prices are valid.
func parsePrice(jval any) (float64, bool) {
	var d decimal.Decimal
	switch v := jval.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		d = decimal.NewFromFloat(v)
	case json.Number:
		var err error
		if d, err = decimal.NewFromString(v.String()); err != nil {
			return 0, false
		}
	case string:
		var err error
		if d, err = decimal.NewFromString(strings.TrimSpace(v)); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if !d.IsPositive() {
		return 0, false
	}
	return d.InexactFloat64(), true
}
