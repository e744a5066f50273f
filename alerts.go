package cartera

// Return thresholds raising an alert.
const (
	TakeProfitThreshold Percent = 20
	ReviewThreshold     Percent = -10
)

// AlertKind tells what an alert suggests doing.
type AlertKind int

const (
	// TakeProfit is raised when a holding returns more than TakeProfitThreshold.
	TakeProfit AlertKind = iota + 1
	// Review is raised when a holding returns less than ReviewThreshold.
	Review
)

func (k AlertKind) String() string {
	switch k {
	case TakeProfit:
		return "take profit"
	case Review:
		return "review"
	}
	return "unknown"
}

// Alert flags a holding whose return crossed a threshold.
type Alert struct {
	// Index is the position of the holding in the list.
	Index  int
	Ticker string
	Kind   AlertKind
	Return Percent
}

// Alerts returns an alert for every holding whose return is above
// TakeProfitThreshold or below ReviewThreshold, in list order.
func Alerts(holdings []Holding) []Alert {
	var alerts []Alert
	for i, h := range holdings {
		var kind AlertKind
		switch {
		case h.ReturnPct > TakeProfitThreshold:
			kind = TakeProfit
		case h.ReturnPct < ReviewThreshold:
			kind = Review
		default:
			continue
		}
		alerts = append(alerts, Alert{Index: i, Ticker: h.Ticker, Kind: kind, Return: h.ReturnPct})
	}
	return alerts
}
