package importer

import (
	"strings"
	"testing"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inversiones = `Fecha Transaccion,Indice,USD transaccionados,Cantidad de shares,Precio Accion,Precio Actual,Valor Actual,Rentabilidad %
2024-03-08T00:00:00,ARM,1500,10.74986,139.5367,142.91,1536.26,2.42
2024-03-08,NVDA,"1,000.50",1.15,870.00,,,
,VOO,100,1,500,510,,
2024-04-01,,100,1,500,510,,
08-04-2024,MSFT,-200,-0.5,400,abc,,
2024-04-09,TSLA,1e400,1,100,110,,
2024-04-10,AMD,100,1,1e-310,1e10,,
`

func TestReadHoldings(t *testing.T) {
	got, err := ReadHoldings(strings.NewReader(inversiones))
	require.NoError(t, err)

	want := []cartera.Holding{
		cartera.Derive(cartera.Holding{Date: date.New(2024, 3, 8), Ticker: "ARM", BaseAmount: 1500, Shares: 10.74986, CostPrice: 139.5367, CurrentPrice: 142.91}),
		cartera.Derive(cartera.Holding{Date: date.New(2024, 3, 8), Ticker: "NVDA", BaseAmount: 1000.5, Shares: 1.15, CostPrice: 870}),
		cartera.Derive(cartera.Holding{Date: date.New(2024, 4, 8), Ticker: "MSFT", BaseAmount: -200, Shares: -0.5, CostPrice: 400}),
	}
	assert.Equal(t, want, got)
	// a missing current price is the cost price.
	assert.Equal(t, 870.0, got[1].CurrentPrice)
	for _, h := range got {
		assert.NoError(t, h.CheckFinite(), h.Ticker)
	}
}

func TestReadHoldings_EnglishHeaders(t *testing.T) {
	doc := "date,ticker,baseCurrencyAmount,shareCount,costPrice,currentPrice\n2025-01-10,MSFT,1000,10,100,120\n"
	got, err := ReadHoldings(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1200.0, got[0].CurrentValue)
	assert.Equal(t, 190000.0, got[0].ReturnAbs)
}

const dolares = `,Compras de dólares,,
,CANT.,FECHA,TC
,3116.88,2024-03-08,962.5
,4675.32,2024-03-08,962.5
,0,2024-03-10,950
,500,2024-03-11,-1
,700,not a date,955
,1000,2024-04-02,951.3
,,,
,999,2024-05-01,940
`

func TestReadPurchases(t *testing.T) {
	got, err := ReadPurchases(strings.NewReader(dolares))
	require.NoError(t, err)
	want := []cartera.CurrencyPurchase{
		{Date: date.New(2024, 3, 8), Amount: 3116.88, Rate: 962.5},
		{Date: date.New(2024, 3, 8), Amount: 4675.32, Rate: 962.5},
		{Date: date.New(2024, 4, 2), Amount: 1000, Rate: 951.3},
	}
	assert.Equal(t, want, got)
	for _, p := range got {
		assert.False(t, p.Date.IsZero(), "purchase of %v without a date", p.Amount)
	}

	got, err = ReadPurchases(strings.NewReader("no,header,here\n1,2,3\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRead(t *testing.T) {
	res, err := Read(strings.NewReader(inversiones), strings.NewReader(dolares))
	require.NoError(t, err)
	assert.Len(t, res.Holdings, 3)
	assert.Len(t, res.Purchases, 3)

	res, err = Read(strings.NewReader(inversiones), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Purchases)

	_, err = Read(strings.NewReader("Fecha,Indice\n,\n"), strings.NewReader(dolares))
	assert.ErrorIs(t, err, cartera.ErrNoRows)

	_, err = Read(strings.NewReader(""), nil)
	assert.ErrorIs(t, err, cartera.ErrNoRows)
}

func TestParseNumber(t *testing.T) {
	for in, want := range map[string]float64{
		"1500":     1500,
		"1,000.50": 1000.5,
		"$ 142.91": 142.91,
		"-0.5":     -0.5,
		"2.42%":    2.42,
		"":         0,
		"abc":      0,
		"1_000":    1000,
	} {
		assert.Equal(t, want, parseNumber(in), "parseNumber(%q)", in)
	}
}
