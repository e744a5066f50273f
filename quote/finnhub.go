package quote

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const finnhubURL = "https://finnhub.io/api/v1/quote"

// finnhub quotes a ticker with the Finnhub quote API, the current price is
// field "c".
//
//	{"c": 261.74, "h": 263.31, "l": 260.68, "o": 261.07, "pc": 259.45, "t": 1582641000}
type finnhub struct {
	cfg Config
	log zerolog.Logger
}

func newFinnhub(cfg Config, log zerolog.Logger) *finnhub {
	if cfg.BaseURL == "" {
		cfg.BaseURL = finnhubURL
	}
	return &finnhub{cfg: cfg, log: log}
}

func (p *finnhub) Name() string          { return Finnhub }
func (p *finnhub) Pacing() time.Duration { return time.Second }

func (p *finnhub) Price(ctx context.Context, ticker string) (float64, bool) {
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("token", p.cfg.APIKey)
	addr := p.cfg.BaseURL + "?" + q.Encode()

	var jobj any
	if err := jwget(ctx, p.cfg.Client, addr, &jobj); err != nil {
		p.log.Debug().Err(err).Str("ticker", ticker).Msg("quote request failed")
		return 0, false
	}
	// an unknown symbol is quoted 0.
	price, ok := parsePrice(lookup("$.c", jobj))
	if !ok {
		p.log.Debug().Str("ticker", ticker).Msg("no price in quote")
	}
	return price, ok
}
