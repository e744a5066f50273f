package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/cartera"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the portfolio summary.
func SummaryMarkdown(s cartera.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Current Value"),
			md.Bold(s.Value.String()),
		},
		Rows: [][]string{
			{"Invested", s.Invested.String()},
			{"Gain / Loss", s.Gain.SignedString()},
			{"Return", s.ReturnPct.SignedString()},
			{fmt.Sprintf("Return (CLP at %d)", cartera.ApproxFXRate), s.ReturnAbs.SignedString()},
		},
	})
	return doc.String()
}

// CurrencyMarkdown renders the currency purchases table and their totals.
func CurrencyMarkdown(purchases []cartera.CurrencyPurchase, s cartera.CurrencySummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dollar Purchases")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Bought"),
			md.Bold(s.Amount.String()),
		},
		Rows: [][]string{
			{"Total Cost", s.LocalCost.String()},
			{"Average Rate", s.AverageRate.Decimal().Round(2).String()},
		},
	})

	if len(purchases) == 0 {
		return doc.String()
	}
	doc.H2("Purchases")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"#", "Date", "USD", "Rate", "CLP"},
		Rows:   [][]string{},
	}
	for i, p := range purchases {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i),
			p.Date.String(),
			cartera.USD(p.Amount).String(),
			strconv.FormatFloat(p.Rate, 'f', -1, 64),
			cartera.CLP(p.LocalCost()).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
