package cartera

import "errors"

// Keys under which the repository persists its two lists.
const (
	HoldingsKey  = "holdings"
	PurchasesKey = "currencyPurchases"
)

var (
	// ErrValidation is wrapped by errors about a record missing a required field.
	ErrValidation = errors.New("invalid record")
	// ErrNotFound is wrapped by errors about a position out of the list range.
	ErrNotFound = errors.New("no record at position")
	// ErrNoRows is returned by an import that extracted no holding.
	ErrNoRows = errors.New("no rows extracted")
)

// Store is the key-value persistence used by a Repository.
//
// Get returns an error wrapping fs.ErrNotExist when the key was never set.
// Set replaces the whole value of key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
