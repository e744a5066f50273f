package cartera

import (
	"errors"
	"testing"

	"github.com/etnz/cartera/date"
	"github.com/google/go-cmp/cmp"
)

func TestDerive(t *testing.T) {
	testCases := []struct {
		name string
		base Holding
		want Holding
	}{
		{
			name: "gain",
			base: Holding{BaseAmount: 1000, Shares: 10, CostPrice: 100, CurrentPrice: 120},
			want: Holding{BaseAmount: 1000, Shares: 10, CostPrice: 100, CurrentPrice: 120, CurrentValue: 1200, ReturnPct: 20, ReturnAbs: 190000},
		},
		{
			name: "unknown price falls back to cost",
			base: Holding{BaseAmount: 1000, Shares: 10, CostPrice: 100},
			want: Holding{BaseAmount: 1000, Shares: 10, CostPrice: 100, CurrentPrice: 100, CurrentValue: 1000},
		},
		{
			name: "zero cost divides by one",
			base: Holding{BaseAmount: 10, Shares: 2, CurrentPrice: 5},
			want: Holding{BaseAmount: 10, Shares: 2, CurrentPrice: 5, CurrentValue: 10, ReturnPct: 500, ReturnAbs: 47500},
		},
		{
			name: "sale",
			base: Holding{BaseAmount: -500, Shares: -4, CostPrice: 125, CurrentPrice: 100},
			want: Holding{BaseAmount: -500, Shares: -4, CostPrice: 125, CurrentPrice: 100, CurrentValue: -400, ReturnPct: -20, ReturnAbs: 95000},
		},
		{
			name: "incoming derived fields are ignored",
			base: Holding{BaseAmount: 1000, Shares: 10, CostPrice: 100, CurrentPrice: 120, CurrentValue: 1, ReturnPct: 2, ReturnAbs: 3},
			want: Holding{BaseAmount: 1000, Shares: 10, CostPrice: 100, CurrentPrice: 120, CurrentValue: 1200, ReturnPct: 20, ReturnAbs: 190000},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.base)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDerive_Properties(t *testing.T) {
	for _, h := range DefaultHoldings() {
		d := Derive(h)
		if d.CurrentValue != d.CurrentPrice*h.Shares {
			t.Errorf("Derive(%v).CurrentValue = %v, want %v", h.Ticker, d.CurrentValue, d.CurrentPrice*h.Shares)
		}
		if diff := cmp.Diff(d, Derive(d)); diff != "" {
			t.Errorf("Derive() is not idempotent on %v (-once +twice):\n%s", h.Ticker, diff)
		}
	}
}

func TestHolding_WithPrice(t *testing.T) {
	h := Derive(Holding{BaseAmount: 1000, Shares: 10, CostPrice: 100})
	got := h.WithPrice(150)
	if got.CurrentValue != 1500 {
		t.Errorf("WithPrice(150).CurrentValue = %v, want 1500", got.CurrentValue)
	}
	if !got.ReturnPct.Equal(50) {
		t.Errorf("WithPrice(150).ReturnPct = %v, want 50%%", got.ReturnPct)
	}
	if h.CurrentPrice != 100 {
		t.Errorf("WithPrice() modified the receiver, CurrentPrice = %v", h.CurrentPrice)
	}
}

func TestHolding_AsSale(t *testing.T) {
	for _, h := range []Holding{
		{BaseAmount: 100, Shares: 2},
		{BaseAmount: -100, Shares: -2},
		{BaseAmount: 100, Shares: -2},
	} {
		got := h.AsSale()
		if got.BaseAmount != -100 || got.Shares != -2 {
			t.Errorf("%+v.AsSale() = %v, %v, want -100, -2", h, got.BaseAmount, got.Shares)
		}
		if !got.IsSale() {
			t.Errorf("%+v.AsSale().IsSale() = false, want true", h)
		}
	}
}

func TestHolding_Validate(t *testing.T) {
	valid := Holding{Date: date.New(2024, 3, 8), Ticker: "ARM", BaseAmount: 1500, Shares: 10.74986, CostPrice: 139.5367}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	testCases := []struct {
		name   string
		modify func(*Holding)
	}{
		{"no date", func(h *Holding) { h.Date = date.Date{} }},
		{"blank ticker", func(h *Holding) { h.Ticker = "  " }},
		{"no amount", func(h *Holding) { h.BaseAmount = 0 }},
		{"no shares", func(h *Holding) { h.Shares = 0 }},
		{"no cost", func(h *Holding) { h.CostPrice = 0 }},
		{"negative cost", func(h *Holding) { h.CostPrice = -1 }},
		{"negative price", func(h *Holding) { h.CurrentPrice = -1 }},
		{"return overflow", func(h *Holding) { h.CostPrice, h.CurrentPrice = 1e-310, 1e10 }},
		{"value overflow", func(h *Holding) { h.Shares, h.CurrentPrice = 1e300, 1e300 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := valid
			tc.modify(&h)
			err := h.Validate()
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want %v", err, ErrValidation)
			}
		})
	}
}

func TestCurrencyPurchase(t *testing.T) {
	p := CurrencyPurchase{Date: date.New(2024, 3, 8), Amount: 3116.88, Rate: 962.5}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if got, want := p.LocalCost(), 3116.88*962.5; got != want {
		t.Errorf("LocalCost() = %v, want %v", got, want)
	}
	for _, bad := range []CurrencyPurchase{
		{Amount: 1, Rate: 1},
		{Date: p.Date, Amount: 0, Rate: 1},
		{Date: p.Date, Amount: 1, Rate: -1},
	} {
		if err := bad.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("%+v.Validate() error = %v, want %v", bad, err, ErrValidation)
		}
	}
}
