package quote

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const alphaVantageURL = "https://www.alphavantage.co/query"

// alphaVantage quotes a ticker with the GLOBAL_QUOTE function of the
// Alpha Vantage API.
//
//	{
//	    "Global Quote": {
//	        "01. symbol": "IBM",
//	        "05. price": "171.2400",
//	        ...
//	    }
//	}
type alphaVantage struct {
	cfg Config
	log zerolog.Logger
}

func newAlphaVantage(cfg Config, log zerolog.Logger) *alphaVantage {
	if cfg.BaseURL == "" {
		cfg.BaseURL = alphaVantageURL
	}
	return &alphaVantage{cfg: cfg, log: log}
}

func (p *alphaVantage) Name() string { return AlphaVantage }

// Pacing is long: the free tier allows 5 calls per minute.
func (p *alphaVantage) Pacing() time.Duration { return 12 * time.Second }

func (p *alphaVantage) Price(ctx context.Context, ticker string) (float64, bool) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", ticker)
	q.Set("apikey", p.cfg.APIKey)
	addr := p.cfg.BaseURL + "?" + q.Encode()

	var jobj any
	if err := jwget(ctx, p.cfg.Client, addr, &jobj); err != nil {
		p.log.Debug().Err(err).Str("ticker", ticker).Msg("quote request failed")
		return 0, false
	}
	price, ok := parsePrice(lookup(`$["Global Quote"]["05. price"]`, jobj))
	if !ok {
		p.log.Debug().Str("ticker", ticker).Msg("no price in quote")
	}
	return price, ok
}
