package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/cartera"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Holding renders a holding to a one line sentence.
func Holding(h cartera.Holding) string {
	if h.IsSale() {
		return fmt.Sprintf("Sold %s of %s on %s for %s", shares(-h.Shares), h.Ticker, h.Date, cartera.USD(-h.BaseAmount))
	}
	return fmt.Sprintf("Bought %s of %s on %s for %s", shares(h.Shares), h.Ticker, h.Date, cartera.USD(h.BaseAmount))
}

// HoldingsMarkdown renders the holdings table, positions first. The position
// is the one to use to edit or remove a holding.
func HoldingsMarkdown(holdings []cartera.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")
	if len(holdings) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"#", "Date", "Ticker", "Type", "USD", "Shares", "Cost", "Price", "Value", "Return", "Return CLP"},
		Rows:   [][]string{},
	}
	for i, h := range holdings {
		kind := "Buy"
		if h.IsSale() {
			kind = "Sell"
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i),
			h.Date.String(),
			h.Ticker,
			kind,
			cartera.USD(h.BaseAmount).String(),
			shares(h.Shares),
			price(h.CostPrice),
			price(h.CurrentPrice),
			cartera.USD(h.CurrentValue).String(),
			h.ReturnPct.SignedString(),
			cartera.CLP(h.ReturnAbs).SignedString(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// shares formats a share count with its significant decimals only.
func shares(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// price formats a price per share, that can be more precise than cents.
func price(v float64) string {
	if d := decimal.NewFromFloat(v); d.Exponent() < -2 {
		return "$" + d.String()
	}
	return cartera.USD(v).String()
}
