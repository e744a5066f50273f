package cartera

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currencies of the portfolio.
const (
	// BaseCurrency is the settlement currency of the holdings.
	BaseCurrency = money.USD
	// LocalCurrency is the currency the base currency is bought with.
	LocalCurrency = money.CLP
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in currency.
func M[T float64 | decimal.Decimal](value T, currency string) Money {
	switch v := any(value).(type) {
	case float64:
		return Money{value: newDecimal(v), cur: currency}
	case decimal.Decimal:
		return Money{value: v, cur: currency}
	}
	return Money{cur: currency}
}

// USD is a helper to create money in the base currency.
func USD(v float64) Money { return M(v, BaseCurrency) }

// CLP is a helper to create money in the local currency.
func CLP(v float64) Money { return M(v, LocalCurrency) }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the value rounded to the currency fraction, with its
// grapheme and thousands separators: "$1,500.00" in USD, "$1.425.000" in CLP.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.Round(int32(m.currency().Fraction)).IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}
