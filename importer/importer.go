// Package importer extracts holdings and currency purchases from the
// investments workbook, either the xlsx file itself or CSV exports of its
// sheets.
//
// In CSV exports, column headers are matched case insensitively, in Spanish
// as in the workbook or with the names of the JSON records.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

// holding columns
const (
	colDate = iota
	colTicker
	colAmount
	colShares
	colCost
	colPrice
	numCols
)

var holdingHeaders = map[string]int{
	"fecha transaccion":   colDate,
	"fecha transacción":   colDate,
	"fecha":               colDate,
	"date":                colDate,
	"indice":              colTicker,
	"índice":              colTicker,
	"index":               colTicker,
	"ticker":              colTicker,
	"usd transaccionados": colAmount,
	"usd":                 colAmount,
	"basecurrencyamount":  colAmount,
	"cantidad de shares":  colShares,
	"shares":              colShares,
	"n° acciones":         colShares,
	"cantidad":            colShares,
	"sharecount":          colShares,
	"precio accion":       colCost,
	"precio acción":       colCost,
	"precio":              colCost,
	"precio compra":       colCost,
	"costprice":           colCost,
	"precio actual":       colPrice,
	"precio venta":        colPrice,
	"currentprice":        colPrice,
}

// purchase columns
const (
	colPurchaseDate = iota
	colPurchaseAmount
	colPurchaseRate
	numPurchaseCols
)

var purchaseHeaders = map[string]int{
	"fecha":    colPurchaseDate,
	"date":     colPurchaseDate,
	"cant.":    colPurchaseAmount,
	"cantidad": colPurchaseAmount,
	"amount":   colPurchaseAmount,
	"tc":       colPurchaseRate,
	"t.c.":     colPurchaseRate,
	"rate":     colPurchaseRate,
}

// ReadHoldings reads the holdings of a CSV document whose first row is the
// header.
//
// Rows without a date or a ticker are skipped, and so are rows whose numbers
// overflow. Numbers that cannot be read count as 0, and a missing current
// price is the cost price. Derived columns are ignored: the holdings are
// derived again.
func ReadHoldings(r io.Reader) ([]cartera.Holding, error) {
	reader := newReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := columns(header, holdingHeaders, numCols)

	var holdings []cartera.Holding
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		h, ok := holding(record, cols, parseDate)
		if !ok {
			continue
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// ReadPurchases reads the currency purchases of a CSV document.
//
// The section starts after the first row holding an amount header ("cant.")
// and ends at the first row missing a value. Rows with a date that cannot be
// read, or an amount or a rate that is not positive, are skipped.
func ReadPurchases(r io.Reader) ([]cartera.CurrencyPurchase, error) {
	reader := newReader(r)
	var cols []int
	for cols == nil {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if c := columns(record, purchaseHeaders, numPurchaseCols); c[colPurchaseAmount] >= 0 {
			cols = c
		}
	}

	var purchases []cartera.CurrencyPurchase
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		p, ok, end := purchase(record, cols, parseDate)
		if end {
			break
		}
		if ok {
			purchases = append(purchases, p)
		}
	}
	return purchases, nil
}

// Read extracts the holdings from holdings, and the currency purchases from
// purchases when it is not nil.
//
// It fails with cartera.ErrNoRows if no holding could be extracted.
func Read(holdings, purchases io.Reader) (cartera.ImportResult, error) {
	var res cartera.ImportResult
	var err error
	if res.Holdings, err = ReadHoldings(holdings); err != nil {
		return res, err
	}
	if len(res.Holdings) == 0 {
		return res, cartera.ErrNoRows
	}
	if purchases == nil {
		return res, nil
	}
	if res.Purchases, err = ReadPurchases(purchases); err != nil {
		return res, fmt.Errorf("failed to read currency purchases: %w", err)
	}
	return res, nil
}

// holding reads the holding in record. It reports false for rows to skip:
// no date, no ticker or numbers out of range.
func holding(record []string, cols []int, dates func(string) (date.Date, bool)) (cartera.Holding, bool) {
	day, ok := dates(cell(record, cols[colDate]))
	ticker := cell(record, cols[colTicker])
	if !ok || ticker == "" {
		return cartera.Holding{}, false
	}
	h := cartera.Derive(cartera.Holding{
		Date:         day,
		Ticker:       ticker,
		BaseAmount:   parseNumber(cell(record, cols[colAmount])),
		Shares:       parseNumber(cell(record, cols[colShares])),
		CostPrice:    parseNumber(cell(record, cols[colCost])),
		CurrentPrice: parseNumber(cell(record, cols[colPrice])),
	})
	if h.CheckFinite() != nil {
		return cartera.Holding{}, false
	}
	return h, true
}

// purchase reads the currency purchase in record. end is true on the first
// row missing a value, ok is false for rows to skip.
func purchase(record []string, cols []int, dates func(string) (date.Date, bool)) (p cartera.CurrencyPurchase, ok, end bool) {
	amount := cell(record, cols[colPurchaseAmount])
	day := cell(record, cols[colPurchaseDate])
	rate := cell(record, cols[colPurchaseRate])
	if amount == "" || day == "" || rate == "" {
		return p, false, true
	}
	p.Date, ok = dates(day)
	p.Amount = parseNumber(amount)
	p.Rate = parseNumber(rate)
	return p, ok && p.Validate() == nil, false
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // spreadsheet exports have ragged rows
	reader.TrimLeadingSpace = true
	return reader
}

// columns returns the position of every column in header, -1 when absent.
// The first matching header wins.
func columns(header []string, names map[string]int, n int) []int {
	cols := make([]int, n)
	for i := range cols {
		cols[i] = -1
	}
	for i, h := range header {
		col, ok := names[strings.ToLower(strings.TrimSpace(h))]
		if ok && cols[col] < 0 {
			cols[col] = i
		}
	}
	return cols
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// date layouts found in spreadsheet exports, besides ISO dates.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2/1/2006"}

func parseDate(s string) (date.Date, bool) {
	if s == "" {
		return date.Date{}, false
	}
	if d, err := date.ParseLoose(s); err == nil {
		return d, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return date.New(t.Date()), true
		}
	}
	return date.Date{}, false
}

// parseNumber reads a number, ignoring currency and percent signs and
// thousands separators. It returns 0 if s is not a number.
func parseNumber(s string) float64 {
	s = strings.NewReplacer("$", "", "%", "", " ", "", "_", "").Replace(s)
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
