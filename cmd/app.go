// Package cmd implements the CLI application to manage a cartera portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cartera"
	"github.com/etnz/cartera/kv"
	"github.com/etnz/cartera/quote"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// group is a set of related subcommands, listed together by the help command.
type group struct {
	name     string
	commands []subcommands.Command
}

var groups = []group{
	{"holdings", []subcommands.Command{&listCmd{}, &addCmd{}, &editCmd{}, &rmCmd{}}},
	{"currency", []subcommands.Command{&usdCmd{}, &usdAddCmd{}, &usdEditCmd{}, &usdRmCmd{}}},
	{"market", []subcommands.Command{&refreshCmd{}, &watchCmd{}}},
	{"reports", []subcommands.Command{&summaryCmd{}, &alertsCmd{}, &allocationCmd{}}},
	{"data", []subcommands.Command{&importCmd{}, &resetCmd{}}},
	{"documentation", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// Store kinds accepted by the -store flag.
const (
	storeDir    = "dir"
	storeSQLite = "sqlite"
	storeMemory = "mem"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeFlag    = flag.String("store", "", "Store kind: dir, sqlite or mem (env CARTERA_STORE, default dir)")
	dataFlag     = flag.String("data", "", "Path to the data folder (dir) or database file (sqlite) (env CARTERA_DATA)")
	providerFlag = flag.String("provider", "", "Quote provider: alphavantage, finnhub or alphavantage-mcp (env CARTERA_PROVIDER)")
	apiKeyFlag   = flag.String("api-key", "", "API key of the quote provider (env CARTERA_API_KEY)")
	verboseFlag  = flag.Bool("v", false, "Log debug messages")
)

// setting returns the flag value if set, then the environment variable, then def.
func setting(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// logger returns the application logger, writing to stderr.
func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *verboseFlag {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// openStore opens the store selected by the configuration. The returned
// function releases it.
func openStore() (cartera.Store, func() error, error) {
	kind := setting(*storeFlag, "CARTERA_STORE", storeDir)
	noop := func() error { return nil }
	switch kind {
	case storeDir:
		dir, err := kv.NewDir(setting(*dataFlag, "CARTERA_DATA", ".cartera"))
		return dir, noop, err
	case storeSQLite:
		db, err := kv.OpenSQLite(setting(*dataFlag, "CARTERA_DATA", "cartera.db"))
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	case storeMemory:
		return kv.NewMemory(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store kind %q, want %s, %s or %s", kind, storeDir, storeSQLite, storeMemory)
}

// OpenRepository is the central function to open the portfolio repository.
// The returned function closes the underlying store.
func OpenRepository() (*cartera.Repository, func() error, error) {
	store, closeStore, err := openStore()
	if err != nil {
		return nil, closeStore, err
	}
	repo, err := cartera.Open(store, cartera.WithLogger(logger()))
	if err != nil {
		return nil, closeStore, errors.Join(err, closeStore())
	}
	return repo, closeStore, nil
}

// newProvider returns the configured quote provider.
func newProvider() (quote.Provider, error) {
	name := setting(*providerFlag, "CARTERA_PROVIDER", quote.Default)
	return quote.New(name, quote.Config{
		APIKey: setting(*apiKeyFlag, "CARTERA_API_KEY", quote.APIKey(name)),
		Logger: logger(),
	})
}

// printMarkdown prints md, rendered for the terminal if stdout is one.
func printMarkdown(md string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseIndex parses the position argument of a command.
func parseIndex(f *flag.FlagSet) (int, error) {
	if f.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one position argument, got %d", f.NArg())
	}
	i, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", f.Arg(0), err)
	}
	return i, nil
}
