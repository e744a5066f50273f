package kv_test

import (
	"testing"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ cartera.Store = (*kv.Memory)(nil)
	_ cartera.Store = (*kv.Dir)(nil)
	_ cartera.Store = (*kv.SQLite)(nil)
)

func TestRepository_OverSQLite(t *testing.T) {
	s, err := kv.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	r, err := cartera.Open(s)
	require.NoError(t, err)
	assert.Equal(t, cartera.DefaultHoldings(), r.Holdings())

	_, err = r.AddHolding(cartera.Holding{
		Date: r.Holdings()[0].Date, Ticker: "MSFT", BaseAmount: 1000, Shares: 10, CostPrice: 100,
	})
	require.NoError(t, err)

	reopened, err := cartera.Open(s)
	require.NoError(t, err)
	assert.Equal(t, r.Holdings(), reopened.Holdings())
	assert.Equal(t, r.Purchases(), reopened.Purchases())
}
