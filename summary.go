package cartera

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summary aggregates a list of holdings.
type Summary struct {
	// Invested is the sum of base amounts.
	Invested Money
	// Value is the sum of current values.
	Value Money
	// Gain is Value minus Invested.
	Gain Money
	// ReturnAbs is the sum of approximate returns, in local currency.
	ReturnAbs Money
	// ReturnPct is the blended return of Value over Invested.
	ReturnPct Percent
}

// Summarize computes the portfolio summary of holdings.
func Summarize(holdings []Holding) Summary {
	s := Summary{Invested: USD(0), Value: USD(0), ReturnAbs: CLP(0)}
	for _, h := range holdings {
		s.Invested = s.Invested.Add(USD(h.BaseAmount))
		s.Value = s.Value.Add(USD(h.CurrentValue))
		s.ReturnAbs = s.ReturnAbs.Add(CLP(h.ReturnAbs))
	}
	s.Gain = s.Value.Sub(s.Invested)
	if !s.Invested.IsZero() {
		pct := s.Gain.Decimal().Div(s.Invested.Decimal()).Mul(decimal.NewFromInt(100))
		s.ReturnPct = Percent(pct.InexactFloat64())
	}
	return s
}

// CurrencySummary aggregates a list of currency purchases.
type CurrencySummary struct {
	// Amount is the total base currency bought.
	Amount Money
	// LocalCost is the total paid in local currency.
	LocalCost Money
	// AverageRate is the effective local currency paid per unit of base
	// currency, zero when nothing was bought.
	AverageRate Money
}

// SummarizeCurrency computes the totals of currency purchases.
func SummarizeCurrency(purchases []CurrencyPurchase) CurrencySummary {
	s := CurrencySummary{Amount: USD(0), LocalCost: CLP(0), AverageRate: CLP(0)}
	for _, p := range purchases {
		amount := USD(p.Amount)
		s.Amount = s.Amount.Add(amount)
		s.LocalCost = s.LocalCost.Add(M(amount.Decimal().Mul(newDecimal(p.Rate)), LocalCurrency))
	}
	if !s.Amount.IsZero() {
		s.AverageRate = M(s.LocalCost.Decimal().Div(s.Amount.Decimal()), LocalCurrency)
	}
	return s
}

// newDecimal converts a float, counting non finite values as zero.
func newDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
