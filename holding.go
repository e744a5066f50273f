package cartera

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/etnz/cartera/date"
)

// ApproxFXRate is the fixed CLP per USD rate used to express a holding's
// return as an approximate local currency amount.
//
// It is not the rate paid for the dollars: invested capital is accounted with
// the real rates of the CurrencyPurchase records.
const ApproxFXRate = 950

// Holding is one buy or sell lot of a security.
//
// Date, Ticker, BaseAmount, Shares, CostPrice and CurrentPrice are the base
// fields. CurrentValue, ReturnPct and ReturnAbs are derived from them by
// Derive and must never be set any other way.
type Holding struct {
	Date   date.Date `json:"date"`
	Ticker string    `json:"ticker"`
	// BaseAmount is the capital deployed (positive) or recovered (negative) in USD.
	BaseAmount float64 `json:"baseCurrencyAmount"`
	// Shares acquired (positive) or disposed (negative).
	Shares    float64 `json:"shareCount"`
	CostPrice float64 `json:"costPrice"`
	// CurrentPrice is the latest known price per share, 0 when unknown.
	CurrentPrice float64 `json:"currentPrice"`

	CurrentValue float64 `json:"currentValue"`
	ReturnPct    Percent `json:"returnPct"`
	ReturnAbs    float64 `json:"returnAbs"`
}

// Derive returns a copy of h with CurrentPrice defaulted and all derived fields
// recomputed from the base fields. Incoming derived fields are ignored.
//
// Derive is total: a zero CostPrice is divided as 1, so the return is
// reported as the full current price instead of an infinite percentage.
func Derive(h Holding) Holding {
	price := h.CurrentPrice
	if price == 0 {
		price = h.CostPrice
	}
	pct := Change(h.CostPrice, price)

	h.CurrentPrice = price
	h.CurrentValue = price * h.Shares
	h.ReturnPct = pct
	h.ReturnAbs = pct.Of(h.BaseAmount) * ApproxFXRate
	return h
}

// WithPrice returns h re-derived with a new current price.
func (h Holding) WithPrice(price float64) Holding {
	h.CurrentPrice = price
	return Derive(h)
}

// IsSale reports whether the lot disposes of shares.
func (h Holding) IsSale() bool { return h.Shares < 0 }

// AsSale returns a copy of h with both the base amount and the share count
// forced negative, whatever their sign was.
func (h Holding) AsSale() Holding {
	h.BaseAmount = -abs(h.BaseAmount)
	h.Shares = -abs(h.Shares)
	return h
}

// Validate checks the base fields required for a manual entry, and returns
// all failures joined. A valid holding also derives to finite numbers.
func (h Holding) Validate() error {
	var errs error
	if h.Date.IsZero() {
		errs = errors.Join(errs, fmt.Errorf("%w: date is required", ErrValidation))
	}
	if strings.TrimSpace(h.Ticker) == "" {
		errs = errors.Join(errs, fmt.Errorf("%w: ticker is required", ErrValidation))
	}
	if h.BaseAmount == 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: base currency amount is required", ErrValidation))
	}
	if h.Shares == 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: share count is required", ErrValidation))
	}
	if h.CostPrice == 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: cost price is required", ErrValidation))
	} else if h.CostPrice < 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: cost price must be positive, got %v", ErrValidation, h.CostPrice))
	}
	if h.CurrentPrice < 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: current price must not be negative, got %v", ErrValidation, h.CurrentPrice))
	}
	for _, v := range []float64{h.BaseAmount, h.Shares, h.CostPrice, h.CurrentPrice} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = errors.Join(errs, fmt.Errorf("%w: %v is not a number", ErrValidation, v))
		}
	}
	if errs != nil {
		return errs
	}
	return Derive(h).CheckFinite()
}

// CheckFinite fails with ErrValidation if a field of h, derived ones
// included, is not a finite number. Such a record cannot be stored.
func (h Holding) CheckFinite() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"amount", h.BaseAmount},
		{"shares", h.Shares},
		{"cost price", h.CostPrice},
		{"current price", h.CurrentPrice},
		{"current value", h.CurrentValue},
		{"return", float64(h.ReturnPct)},
		{"gain", h.ReturnAbs},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s of %s is out of range", ErrValidation, f.name, h.Ticker)
		}
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
