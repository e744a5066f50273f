package cartera

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Change describes a committed mutation of one of the repository lists.
type Change struct {
	// Key is the list that changed, HoldingsKey or PurchasesKey.
	Key string
	// Len is the length of the list after the change.
	Len int
}

// Repository owns the holdings and currency purchases lists.
//
// Every mutation derives the holdings, persists the whole list to the store,
// and then notifies observers. When persisting fails the mutation is kept in
// memory and the error is returned: the store is behind until the next
// successful write.
type Repository struct {
	store Store
	log   zerolog.Logger

	mu        sync.RWMutex
	holdings  []Holding
	purchases []CurrencyPurchase
	observers []func(Change)
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used to report recovered storage errors.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) { r.log = l.With().Str("component", "repository").Logger() }
}

// Open loads both lists from store.
//
// A list that is absent or malformed in the store is replaced by the bundled
// default dataset, which is persisted right away. Other store errors are
// returned.
func Open(store Store, opts ...Option) (*Repository, error) {
	r := &Repository{store: store, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}

	var holdings []Holding
	ok, err := r.read(HoldingsKey, &holdings)
	if err != nil {
		return nil, err
	}
	if ok {
		r.holdings = make([]Holding, 0, len(holdings))
		for _, h := range deriveAll(holdings) {
			if err := h.CheckFinite(); err != nil {
				r.log.Warn().Err(err).Msg("dropping stored holding")
				continue
			}
			r.holdings = append(r.holdings, h)
		}
	} else {
		r.holdings = DefaultHoldings()
		if err := r.save(HoldingsKey, r.holdings); err != nil {
			return nil, err
		}
	}

	var purchases []CurrencyPurchase
	ok, err = r.read(PurchasesKey, &purchases)
	if err != nil {
		return nil, err
	}
	if ok {
		r.purchases = purchases
	} else {
		r.purchases = DefaultPurchases()
		if err := r.save(PurchasesKey, r.purchases); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// read decodes the list stored under key into v.
// It returns false, without error, if the list is absent or malformed.
func (r *Repository) read(key string, v any) (bool, error) {
	content, err := r.store.Get(key)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Info().Str("key", key).Msg("nothing stored, using the default dataset")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read %q from store: %w", key, err)
	}
	// the stored value must be a sequence, 'null' included is not.
	if trimmed := bytes.TrimSpace(content); len(trimmed) == 0 || trimmed[0] != '[' {
		r.log.Warn().Str("key", key).Msg("stored value is not a list, resetting to the default dataset")
		return false, nil
	}
	if err := json.Unmarshal(content, v); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cannot parse stored value, resetting to the default dataset")
		return false, nil
	}
	return true, nil
}

// save persists list under key.
func (r *Repository) save(key string, list any) error {
	content, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	if err := r.store.Set(key, content); err != nil {
		return fmt.Errorf("cannot write %q to store: %w", key, err)
	}
	return nil
}

// OnChange registers f to be called after every successful mutation.
func (r *Repository) OnChange(f func(Change)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, f)
}

// commitHoldings persists the holdings. It must be called with the lock held,
// and the returned function must be called once the lock is released.
func (r *Repository) commitHoldings() (notify func(), err error) {
	return r.commit(HoldingsKey, r.holdings, len(r.holdings))
}

// commitPurchases is like commitHoldings for the currency purchases.
func (r *Repository) commitPurchases() (notify func(), err error) {
	return r.commit(PurchasesKey, r.purchases, len(r.purchases))
}

func (r *Repository) commit(key string, list any, n int) (func(), error) {
	if err := r.save(key, list); err != nil {
		return func() {}, err
	}
	observers := slices.Clone(r.observers)
	change := Change{Key: key, Len: n}
	return func() {
		for _, f := range observers {
			f(change)
		}
	}, nil
}

// Holdings returns a copy of the holdings list.
func (r *Repository) Holdings() []Holding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.holdings)
}

// Holding returns the holding at position i.
func (r *Repository) Holding(i int) (Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := checkIndex("holding", i, len(r.holdings)); err != nil {
		return Holding{}, err
	}
	return r.holdings[i], nil
}

// AddHolding validates h, derives it and appends it. It returns the position
// of the new holding.
func (r *Repository) AddHolding(h Holding) (int, error) {
	if err := h.Validate(); err != nil {
		return -1, err
	}
	r.mu.Lock()
	r.holdings = append(r.holdings, Derive(h))
	i := len(r.holdings) - 1
	notify, err := r.commitHoldings()
	r.mu.Unlock()
	notify()
	return i, err
}

// UpdateHolding replaces the holding at position i with h, derived.
func (r *Repository) UpdateHolding(i int, h Holding) error {
	r.mu.Lock()
	if err := checkIndex("holding", i, len(r.holdings)); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := h.Validate(); err != nil {
		r.mu.Unlock()
		return err
	}
	r.holdings[i] = Derive(h)
	notify, err := r.commitHoldings()
	r.mu.Unlock()
	notify()
	return err
}

// RemoveHolding deletes the holding at position i.
func (r *Repository) RemoveHolding(i int) error {
	r.mu.Lock()
	if err := checkIndex("holding", i, len(r.holdings)); err != nil {
		r.mu.Unlock()
		return err
	}
	r.holdings = slices.Delete(slices.Clone(r.holdings), i, i+1)
	notify, err := r.commitHoldings()
	r.mu.Unlock()
	notify()
	return err
}

// ReplaceHoldings swaps the whole holdings list for list, derived. A record
// whose derived fields overflow fails it and nothing is replaced.
func (r *Repository) ReplaceHoldings(list []Holding) error {
	derived := deriveAll(list)
	for i, h := range derived {
		if err := h.CheckFinite(); err != nil {
			return fmt.Errorf("holding %d: %w", i, err)
		}
	}
	r.mu.Lock()
	r.holdings = derived
	notify, err := r.commitHoldings()
	r.mu.Unlock()
	notify()
	return err
}

// ApplyPrices sets the current price of every holding whose ticker has a price
// in prices, re-derives all holdings and persists them once.
func (r *Repository) ApplyPrices(prices map[string]float64) error {
	r.mu.Lock()
	updated := make([]Holding, len(r.holdings))
	for i, h := range r.holdings {
		updated[i] = Derive(h)
		if price, ok := prices[h.Ticker]; ok {
			if d := h.WithPrice(price); d.CheckFinite() == nil {
				updated[i] = d
			} else {
				r.log.Warn().Str("ticker", h.Ticker).Float64("price", price).Msg("price out of range, ignored")
			}
		}
	}
	r.holdings = updated
	notify, err := r.commitHoldings()
	r.mu.Unlock()
	notify()
	return err
}

// Purchases returns a copy of the currency purchases list.
func (r *Repository) Purchases() []CurrencyPurchase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.purchases)
}

// Purchase returns the currency purchase at position i.
func (r *Repository) Purchase(i int) (CurrencyPurchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := checkIndex("currency purchase", i, len(r.purchases)); err != nil {
		return CurrencyPurchase{}, err
	}
	return r.purchases[i], nil
}

// AddPurchase validates p and appends it. It returns the position of the new purchase.
func (r *Repository) AddPurchase(p CurrencyPurchase) (int, error) {
	if err := p.Validate(); err != nil {
		return -1, err
	}
	r.mu.Lock()
	r.purchases = append(r.purchases, p)
	i := len(r.purchases) - 1
	notify, err := r.commitPurchases()
	r.mu.Unlock()
	notify()
	return i, err
}

// UpdatePurchase replaces the currency purchase at position i with p.
func (r *Repository) UpdatePurchase(i int, p CurrencyPurchase) error {
	r.mu.Lock()
	if err := checkIndex("currency purchase", i, len(r.purchases)); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := p.Validate(); err != nil {
		r.mu.Unlock()
		return err
	}
	r.purchases[i] = p
	notify, err := r.commitPurchases()
	r.mu.Unlock()
	notify()
	return err
}

// RemovePurchase deletes the currency purchase at position i.
func (r *Repository) RemovePurchase(i int) error {
	r.mu.Lock()
	if err := checkIndex("currency purchase", i, len(r.purchases)); err != nil {
		r.mu.Unlock()
		return err
	}
	r.purchases = slices.Delete(slices.Clone(r.purchases), i, i+1)
	notify, err := r.commitPurchases()
	r.mu.Unlock()
	notify()
	return err
}

// ReplacePurchases swaps the whole currency purchases list for list.
func (r *Repository) ReplacePurchases(list []CurrencyPurchase) error {
	r.mu.Lock()
	r.purchases = append([]CurrencyPurchase{}, list...)
	notify, err := r.commitPurchases()
	r.mu.Unlock()
	notify()
	return err
}

// ImportResult holds the rows extracted from an external document.
type ImportResult struct {
	Holdings  []Holding
	Purchases []CurrencyPurchase
}

// Import replaces the holdings with the imported ones, and the currency
// purchases too if any were extracted.
//
// An import without holdings fails with ErrNoRows and leaves both lists untouched.
func (r *Repository) Import(res ImportResult) error {
	if len(res.Holdings) == 0 {
		return ErrNoRows
	}
	if err := r.ReplaceHoldings(res.Holdings); err != nil {
		return err
	}
	if len(res.Purchases) == 0 {
		return nil
	}
	return r.ReplacePurchases(res.Purchases)
}

// Reset replaces both lists with the bundled default dataset.
func (r *Repository) Reset() error {
	if err := r.ReplaceHoldings(DefaultHoldings()); err != nil {
		return err
	}
	return r.ReplacePurchases(DefaultPurchases())
}

func deriveAll(list []Holding) []Holding {
	derived := make([]Holding, len(list))
	for i, h := range list {
		derived[i] = Derive(h)
	}
	return derived
}

func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s %d out of range [0, %d)", ErrNotFound, what, i, n)
	}
	return nil
}
