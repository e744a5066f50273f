package cartera

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultWatchSchedule re-triggers a refresh pass every 30 minutes.
const DefaultWatchSchedule = "@every 30m"

// ErrRefreshInProgress is returned by a refresh pass started while another one
// is still running.
var ErrRefreshInProgress = errors.New("a price refresh is already in progress")

// PriceSource returns the current price of a ticker, or false when none is
// available.
type PriceSource interface {
	Price(ctx context.Context, ticker string) (float64, bool)
}

// QuoteProvider is a PriceSource with a name and the delay it requires
// between two consecutive calls.
type QuoteProvider interface {
	PriceSource
	Name() string
	Pacing() time.Duration
}

// SleepFunc waits for d, or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the SleepFunc used by default.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tickers returns the distinct tickers of holdings in order of first appearance.
func Tickers(holdings []Holding) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, h := range holdings {
		if seen[h.Ticker] {
			continue
		}
		seen[h.Ticker] = true
		tickers = append(tickers, h.Ticker)
	}
	return tickers
}

// FetchPrices asks src for the price of every ticker, one at a time and in
// order, waiting pacing between two calls. Tickers without a price are
// absent from the returned map.
//
// It stops at the first failed wait and returns the wait error. A context
// done during the last quote is reported too, with the prices found so far.
func FetchPrices(ctx context.Context, src PriceSource, tickers []string, pacing time.Duration, sleep SleepFunc) (map[string]float64, error) {
	prices := make(map[string]float64)
	for i, ticker := range tickers {
		if i > 0 && pacing > 0 {
			if err := sleep(ctx, pacing); err != nil {
				return prices, err
			}
		}
		if price, ok := src.Price(ctx, ticker); ok {
			prices[ticker] = price
		}
	}
	return prices, ctx.Err()
}

// RefreshResult reports a completed refresh pass.
type RefreshResult struct {
	// Prices found, by ticker.
	Prices map[string]float64
	// Missing lists the tickers left without a new price, in order.
	Missing []string
}

// Refresher runs price refresh passes over a repository.
type Refresher struct {
	repo     *Repository
	provider QuoteProvider
	sleep    SleepFunc
	log      zerolog.Logger
	running  atomic.Bool
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithRefreshLogger sets the refresher logger.
func WithRefreshLogger(l zerolog.Logger) RefresherOption {
	return func(r *Refresher) { r.log = l.With().Str("component", "refresher").Logger() }
}

// WithSleep replaces the function used to wait between two quotes.
func WithSleep(f SleepFunc) RefresherOption {
	return func(r *Refresher) { r.sleep = f }
}

// NewRefresher returns a Refresher updating repo with prices from provider.
func NewRefresher(repo *Repository, provider QuoteProvider, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		repo:     repo,
		provider: provider,
		sleep:    Sleep,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh runs a single pass: every distinct ticker is quoted in turn, then
// all the prices found are applied to the holdings at once.
//
// If the pass is interrupted, nothing is applied. A pass started while
// another is running fails with ErrRefreshInProgress.
func (r *Refresher) Refresh(ctx context.Context) (RefreshResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return RefreshResult{}, ErrRefreshInProgress
	}
	defer r.running.Store(false)

	tickers := Tickers(r.repo.Holdings())
	r.log.Info().Str("provider", r.provider.Name()).Int("tickers", len(tickers)).Msg("refreshing prices")
	start := time.Now()

	prices, err := FetchPrices(ctx, r.provider, tickers, r.provider.Pacing(), r.sleep)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("refresh interrupted after %d prices: %w", len(prices), err)
	}
	if err := r.repo.ApplyPrices(prices); err != nil {
		return RefreshResult{}, fmt.Errorf("cannot apply refreshed prices: %w", err)
	}

	res := RefreshResult{Prices: prices}
	for _, t := range tickers {
		if _, ok := prices[t]; !ok {
			res.Missing = append(res.Missing, t)
		}
	}
	r.log.Info().
		Int("priced", len(prices)).
		Strs("missing", res.Missing).
		Dur("elapsed", time.Since(start)).
		Msg("prices refreshed")
	return res, nil
}

// Watch runs a refresh pass on schedule, a cron spec such as
// DefaultWatchSchedule, until ctx is done. Failed passes are logged, ticks
// that fire while a pass is running are skipped.
func (r *Refresher) Watch(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		_, err := r.Refresh(ctx)
		switch {
		case errors.Is(err, ErrRefreshInProgress):
			r.log.Warn().Msg("previous refresh still running, skipping this tick")
		case err != nil:
			r.log.Error().Err(err).Msg("refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	c.Start()
	r.log.Info().Str("schedule", schedule).Msg("watching prices")

	<-ctx.Done()
	<-c.Stop().Done()
	r.log.Info().Msg("stopped watching prices")
	return nil
}
