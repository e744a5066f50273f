package cartera

import (
	"math"
	"strconv"
)

// Percent is a ratio expressed in percent: 20 means 20%.
type Percent float64

// percentTolerance is the largest difference between two equal percents.
const percentTolerance = 0.0001

// Change returns the relative change from base to v. A zero base is divided
// as 1, so the change stays finite.
func Change(base, v float64) Percent {
	divisor := base
	if divisor == 0 {
		divisor = 1
	}
	return Percent((v - base) / divisor * 100)
}

// Share returns the weight of part in whole, 0 if whole is 0.
func Share(part, whole float64) Percent {
	if whole == 0 {
		return 0
	}
	return Percent(part / whole * 100)
}

// Of returns the p percent of v.
func (p Percent) Of(v float64) float64 { return v * (float64(p) / 100) }

func (p Percent) Equal(q Percent) bool {
	return math.Abs(float64(p-q)) < percentTolerance
}

// String formats p with two decimals: "2.42%".
func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64) + "%"
}

// SignedString is like String with a leading "+" on gains. A percent that
// rounds to zero is "-".
func (p Percent) SignedString() string {
	s := p.String()
	switch {
	case s == "0.00%" || s == "-0.00%":
		return "-"
	case p > 0:
		return "+" + s
	}
	return s
}
