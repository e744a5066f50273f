package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/xuri/excelize/v2"
)

// InvestmentsSheet is the workbook sheet holding the portfolio. The first
// sheet is read when no sheet has this name.
const InvestmentsSheet = "Inversiones"

// Layout of the investments sheet, zero based.
const (
	firstHoldingRow = 3   // row 4
	lastHoldingRow  = 100 // row 101
	purchaseHeader  = "cant."
	purchaseCol     = 1 // column B, holding the purchase header
)

// holdingCols are the columns of the holdings table, W to AE.
var holdingCols = []int{
	colDate:   22, // W
	colTicker: 23, // X
	colAmount: 25, // Z
	colShares: 26, // AA
	colCost:   27, // AB
	colPrice:  30, // AE
}

// purchaseCols are the columns of the purchases table, B to D.
var purchaseCols = []int{
	colPurchaseAmount: 1, // B
	colPurchaseDate:   2, // C
	colPurchaseRate:   3, // D
}

// ReadWorkbook extracts the holdings and the currency purchases of an xlsx
// workbook.
//
// Holdings are read from rows 4 to 101 of the investments sheet, with the
// same skipping rules as ReadHoldings. Dates are date cells or text.
// Purchases are read below the "CANT." header of column B, down to the first
// row missing a value, with the same rules as ReadPurchases.
//
// It fails with cartera.ErrNoRows if no holding could be extracted.
func ReadWorkbook(r io.Reader) (cartera.ImportResult, error) {
	var res cartera.ImportResult
	f, err := excelize.OpenReader(r)
	if err != nil {
		return res, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := investmentsSheet(f.GetSheetList())
	if sheet == "" {
		return res, cartera.ErrNoRows
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return res, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	dates := workbookDates(f)

	for i := firstHoldingRow; i <= lastHoldingRow && i < len(rows); i++ {
		if h, ok := holding(rows[i], holdingCols, dates); ok {
			res.Holdings = append(res.Holdings, h)
		}
	}
	if len(res.Holdings) == 0 {
		return res, cartera.ErrNoRows
	}

	for i, row := range rows {
		if strings.ToLower(cell(row, purchaseCol)) != purchaseHeader {
			continue
		}
		for _, row := range rows[i+1:] {
			p, ok, end := purchase(row, purchaseCols, dates)
			if end {
				break
			}
			if ok {
				res.Purchases = append(res.Purchases, p)
			}
		}
		break
	}
	return res, nil
}

// investmentsSheet returns the investments sheet among sheets, or the first one.
func investmentsSheet(sheets []string) string {
	for _, name := range sheets {
		if strings.EqualFold(strings.TrimSpace(name), InvestmentsSheet) {
			return name
		}
	}
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0]
}

// workbookDates returns a date parser for the raw cells of f: text dates as
// in CSV exports, or date serial numbers.
func workbookDates(f *excelize.File) func(string) (date.Date, bool) {
	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	return func(s string) (date.Date, bool) {
		if d, ok := parseDate(s); ok {
			return d, true
		}
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil || serial < 1 {
			return date.Date{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return date.Date{}, false
		}
		return date.New(t.Date()), true
	}
}
