package cartera

import "math"

// Slice is the share of the portfolio held in one ticker.
type Slice struct {
	Ticker string
	// Value is the absolute sum of the current values of the ticker holdings.
	Value float64
}

// Allocation sums the current value of holdings per ticker, in order of first
// appearance. Tickers whose sum is zero, fully sold positions typically, are
// left out.
func Allocation(holdings []Holding) []Slice {
	sums := make(map[string]float64)
	for _, h := range holdings {
		sums[h.Ticker] += h.CurrentValue
	}
	var slices []Slice
	for _, t := range Tickers(holdings) {
		if v := sums[t]; v != 0 {
			slices = append(slices, Slice{Ticker: t, Value: math.Abs(v)})
		}
	}
	return slices
}
