package cartera

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

var (
	//go:embed defaults/holdings.json
	defaultHoldings []byte
	//go:embed defaults/purchases.json
	defaultPurchases []byte
)

// DefaultHoldings returns the bundled holdings dataset, derived.
func DefaultHoldings() []Holding {
	var list []Holding
	mustDecode("holdings", defaultHoldings, &list)
	return deriveAll(list)
}

// DefaultPurchases returns the bundled currency purchases dataset.
func DefaultPurchases() []CurrencyPurchase {
	var list []CurrencyPurchase
	mustDecode("purchases", defaultPurchases, &list)
	return list
}

func mustDecode(name string, content []byte, v any) {
	if err := json.Unmarshal(content, v); err != nil {
		panic(fmt.Sprintf("bundled %s dataset is corrupted: %v", name, err))
	}
}
