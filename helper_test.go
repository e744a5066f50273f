package cartera

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/etnz/cartera/date"
)

// mapStore is a Store for tests, failing every Set when failSet is set.
type mapStore struct {
	values  map[string][]byte
	sets    int
	failSet error
	failGet error
}

func newMapStore() *mapStore { return &mapStore{values: make(map[string][]byte)} }

func (s *mapStore) Get(key string) ([]byte, error) {
	if s.failGet != nil {
		return nil, s.failGet
	}
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
	}
	return v, nil
}

func (s *mapStore) Set(key string, value []byte) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.sets++
	s.values[key] = value
	return nil
}

var errDiskFull = errors.New("disk full")

// H is a helper for tests to create a holding from its base fields.
func H(day, ticker string, amount, shares, cost, price float64) Holding {
	return Holding{Date: date.MustParse(day), Ticker: ticker, BaseAmount: amount, Shares: shares, CostPrice: cost, CurrentPrice: price}
}

// fakeQuotes is a QuoteProvider serving fixed prices and recording calls.
type fakeQuotes struct {
	prices map[string]float64
	pacing time.Duration
	calls  []string
	// entered, if set, receives a value when a Price call starts.
	entered chan struct{}
	// block, if set, is waited on by every Price call.
	block chan struct{}
	// cancel, if set, is called when cancelOn is quoted.
	cancel   context.CancelFunc
	cancelOn string
}

func (f *fakeQuotes) Name() string          { return "fake" }
func (f *fakeQuotes) Pacing() time.Duration { return f.pacing }

func (f *fakeQuotes) Price(ctx context.Context, ticker string) (float64, bool) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.calls = append(f.calls, ticker)
	if f.cancel != nil && ticker == f.cancelOn {
		f.cancel()
		return 0, false
	}
	p, ok := f.prices[ticker]
	return p, ok
}
