package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tables parses markdown and returns the rows of every table, header first.
func tables(t *testing.T, markdown string) [][][]string {
	t.Helper()
	source := []byte(markdown)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var all [][][]string
	var row []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.Kind() {
		case east.KindTable:
			if entering {
				all = append(all, nil)
			}
		case east.KindTableHeader, east.KindTableRow:
			if entering {
				row = nil
			} else {
				all[len(all)-1] = append(all[len(all)-1], row)
			}
		case east.KindTableCell:
			if entering {
				row = append(row, cellText(n, source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return all
}

func cellText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func holdings() []cartera.Holding {
	return []cartera.Holding{
		cartera.Derive(cartera.Holding{Date: date.New(2024, 3, 8), Ticker: "ARM", BaseAmount: 1500, Shares: 10.74986, CostPrice: 139.5367, CurrentPrice: 142.91}),
		cartera.Derive(cartera.Holding{Date: date.New(2024, 5, 2), Ticker: "NVDA", BaseAmount: -300, Shares: -0.35, CostPrice: 857.14}),
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	out := HoldingsMarkdown(holdings())
	got := tables(t, out)
	if len(got) != 1 {
		t.Fatalf("HoldingsMarkdown() has %d tables, want 1:\n%s", len(got), out)
	}
	rows := got[0]
	if len(rows) != 3 {
		t.Fatalf("HoldingsMarkdown() has %d rows, want 3:\n%s", len(rows), out)
	}
	want := []string{"0", "2024-03-08", "ARM", "Buy", "$1,500.00", "10.74986", "$139.5367", "$142.91", "$1,536.26", "+2.42%", "+$34.449"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row 0, column %q = %q, want %q", rows[0][i], rows[1][i], cell)
		}
	}
	if rows[2][3] != "Sell" || rows[2][5] != "-0.35" {
		t.Errorf("row 1 = %v, want a sale of -0.35 shares", rows[2])
	}

	if out := HoldingsMarkdown(nil); !strings.Contains(out, "No holdings.") {
		t.Errorf("HoldingsMarkdown(nil) = %q, want a placeholder", out)
	}
}

func TestHolding(t *testing.T) {
	h := holdings()
	if got, want := Holding(h[0]), "Bought 10.74986 of ARM on 2024-03-08 for $1,500.00"; got != want {
		t.Errorf("Holding() = %q, want %q", got, want)
	}
	if got, want := Holding(h[1]), "Sold 0.35 of NVDA on 2024-05-02 for $300.00"; got != want {
		t.Errorf("Holding() = %q, want %q", got, want)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	out := SummaryMarkdown(cartera.Summarize(holdings()))
	got := tables(t, out)
	if len(got) != 1 {
		t.Fatalf("SummaryMarkdown() has %d tables, want 1:\n%s", len(got), out)
	}
	want := [][]string{
		{"Current Value", "$1,236.26"},
		{"Invested", "$1,200.00"},
		{"Gain / Loss", "+$36.26"},
		{"Return", "+3.02%"},
		{"Return (CLP at 950)", "+$34.449"},
	}
	for i, row := range want {
		if strings.Join(got[0][i], "|") != strings.Join(row, "|") {
			t.Errorf("row %d = %v, want %v", i, got[0][i], row)
		}
	}
}

func TestCurrencyMarkdown(t *testing.T) {
	purchases := []cartera.CurrencyPurchase{
		{Date: date.New(2024, 3, 8), Amount: 1000, Rate: 900},
		{Date: date.New(2024, 4, 2), Amount: 3000, Rate: 1000.3},
	}
	out := CurrencyMarkdown(purchases, cartera.SummarizeCurrency(purchases))
	got := tables(t, out)
	if len(got) != 2 {
		t.Fatalf("CurrencyMarkdown() has %d tables, want 2:\n%s", len(got), out)
	}
	if got, want := got[0][2], []string{"Average Rate", "975.23"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("average rate row = %v, want %v", got, want)
	}
	if got, want := got[1][1], []string{"0", "2024-03-08", "$1,000.00", "900", "$900.000"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("first purchase row = %v, want %v", got, want)
	}
}

func TestAlertsMarkdown(t *testing.T) {
	alerts := []cartera.Alert{
		{Index: 0, Ticker: "ARM", Kind: cartera.TakeProfit, Return: 21},
		{Index: 3, Ticker: "INTC", Kind: cartera.Review, Return: -10.5},
	}
	out := AlertsMarkdown(alerts)
	for _, want := range []string{
		"- ARM (#0): return of +21.00% is above +20.00%. Consider taking profits.",
		"- INTC (#3): return of -10.50% is below -10.00%. Review the position.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("AlertsMarkdown() = %q, want it to contain %q", out, want)
		}
	}
	if out := AlertsMarkdown(nil); !strings.Contains(out, "No alerts at the moment.") {
		t.Errorf("AlertsMarkdown(nil) = %q, want a placeholder", out)
	}
}

func TestAllocationMarkdown(t *testing.T) {
	out := AllocationMarkdown([]cartera.Slice{{Ticker: "ARM", Value: 750}, {Ticker: "VOO", Value: 250}})
	got := tables(t, out)
	if len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("AllocationMarkdown() = %v, want one table of 2 rows:\n%s", got, out)
	}
	if got, want := got[0][1], []string{"ARM", "$750.00", "75.00%"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ARM row = %v, want %v", got, want)
	}
}

func TestRefreshMarkdown(t *testing.T) {
	res := cartera.RefreshResult{Prices: map[string]float64{"ARM": 150.5}, Missing: []string{"NVDA"}}
	out := RefreshMarkdown(res, []string{"ARM", "NVDA"})
	if got := tables(t, out); len(got) != 1 || got[0][1][1] != "$150.50" {
		t.Errorf("RefreshMarkdown() tables = %v, want ARM at $150.50", got)
	}
	if !strings.Contains(out, "No price found for NVDA.") {
		t.Errorf("RefreshMarkdown() = %q, want the missing tickers", out)
	}
}
