// Package cartera tracks a personal portfolio of security lots bought with
// US dollars, and the dollars themselves bought with Chilean pesos. It is
// designed to be local-first: both lists live in a key-value store the user
// owns.
//
// The core functionalities include:
//   - Derivation: valuation and return of every holding are computed from its
//     base fields by Derive, and never stored any other way.
//   - Repository: the two ordered lists, persisted on every mutation, with a
//     self-healing load path falling back to a bundled dataset.
//   - Price refresh: a sequential, paced pass over the distinct tickers using
//     a QuoteProvider, merged into the holdings at once.
//   - Reports: summaries, alerts on returns crossing thresholds, and the
//     allocation per ticker.
//
// This package serves as the foundational logic for the `cartera`
// command-line tool.
package cartera
