package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/cartera"
	md "github.com/nao1215/markdown"
)

// Alert renders an alert to a one line advice.
func Alert(a cartera.Alert) string {
	switch a.Kind {
	case cartera.TakeProfit:
		return fmt.Sprintf("%s (#%d): return of %s is above %s. Consider taking profits.", a.Ticker, a.Index, a.Return.SignedString(), cartera.TakeProfitThreshold.SignedString())
	case cartera.Review:
		return fmt.Sprintf("%s (#%d): return of %s is below %s. Review the position.", a.Ticker, a.Index, a.Return.SignedString(), cartera.ReviewThreshold.SignedString())
	}
	return fmt.Sprintf("%s (#%d): %s", a.Ticker, a.Index, a.Kind)
}

// AlertsMarkdown renders the list of alerts.
func AlertsMarkdown(alerts []cartera.Alert) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Alerts")
	if len(alerts) == 0 {
		doc.PlainText("No alerts at the moment.")
		return doc.String()
	}
	items := make([]string, len(alerts))
	for i, a := range alerts {
		items[i] = Alert(a)
	}
	doc.BulletList(items...)
	return doc.String()
}

// AllocationMarkdown renders the share of every ticker in the portfolio value.
func AllocationMarkdown(slices []cartera.Slice) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Allocation")
	var total float64
	for _, s := range slices {
		total += s.Value
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Value", "Weight"},
		Rows:   [][]string{},
	}
	for _, s := range slices {
		table.Rows = append(table.Rows, []string{
			s.Ticker,
			cartera.USD(s.Value).String(),
			cartera.Share(s.Value, total).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// RefreshMarkdown renders the outcome of a price refresh.
func RefreshMarkdown(res cartera.RefreshResult, tickers []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Prices Updated")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Price"},
		Rows:   [][]string{},
	}
	for _, t := range tickers {
		if p, ok := res.Prices[t]; ok {
			table.Rows = append(table.Rows, []string{t, price(p)})
		}
	}
	if len(table.Rows) > 0 {
		doc.Table(table)
	}
	if len(res.Missing) > 0 {
		doc.PlainText(fmt.Sprintf("No price found for %s.", strings.Join(res.Missing, ", ")))
	}
	return doc.String()
}
