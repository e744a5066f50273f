package cartera

import (
	"errors"
	"fmt"
	"math"

	"github.com/etnz/cartera/date"
)

// CurrencyPurchase is one acquisition of settlement currency (USD) paid in
// local currency (CLP).
type CurrencyPurchase struct {
	Date date.Date `json:"date"`
	// Amount of USD bought.
	Amount float64 `json:"amount"`
	// Rate is the CLP paid per USD.
	Rate float64 `json:"rate"`
}

// LocalCost returns the CLP paid for the purchase.
func (p CurrencyPurchase) LocalCost() float64 { return p.Amount * p.Rate }

// Validate checks the fields required for a manual entry.
func (p CurrencyPurchase) Validate() error {
	var errs error
	if p.Date.IsZero() {
		errs = errors.Join(errs, fmt.Errorf("%w: date is required", ErrValidation))
	}
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) || math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
		return errors.Join(errs, fmt.Errorf("%w: amount and rate must be numbers", ErrValidation))
	}
	if p.Amount <= 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: amount must be positive, got %v", ErrValidation, p.Amount))
	}
	if p.Rate <= 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: rate must be positive, got %v", ErrValidation, p.Rate))
	}
	return errs
}
