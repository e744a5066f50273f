package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the holdings table" }
func (*listCmd) Usage() string {
	return `cartera list

  Displays every holding with its position, derived value and returns.
  The position is the one expected by 'edit' and 'rm'.
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (*listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	printMarkdown(renderer.HoldingsMarkdown(repo.Holdings()))
	return subcommands.ExitSuccess
}

// holdingFlags are the base fields of a holding entered by hand.
type holdingFlags struct {
	date   string
	ticker string
	amount float64
	shares float64
	cost   float64
	price  float64
	sell   bool
}

func (c *holdingFlags) SetFlags(f *flag.FlagSet, defaultDate string) {
	f.StringVar(&c.date, "d", defaultDate, "Date of the lot (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Ticker of the security")
	f.Float64Var(&c.amount, "amount", 0, "Amount in USD paid (or received for a sale)")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares bought (or sold)")
	f.Float64Var(&c.cost, "cost", 0, "Price per share paid")
	f.Float64Var(&c.price, "price", 0, "Current price per share, the cost price if unknown")
	f.BoolVar(&c.sell, "sell", false, "Record a sale: amount and shares are stored negative")
}

// apply sets on h the fields whose flag is set in f.
func (c *holdingFlags) apply(h cartera.Holding, f *flag.FlagSet) (cartera.Holding, error) {
	var err error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "d":
			h.Date, err = date.Parse(c.date)
		case "t":
			h.Ticker = c.ticker
		case "amount":
			h.BaseAmount = c.amount
		case "shares":
			h.Shares = c.shares
		case "cost":
			h.CostPrice = c.cost
		case "price":
			h.CurrentPrice = c.price
		}
	})
	if c.sell {
		h = h.AsSale()
	}
	return h, err
}

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	holdingFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a buy or sell lot to the holdings" }
func (*addCmd) Usage() string {
	return `cartera add -t <ticker> -amount <usd> -shares <count> -cost <price> [-price <price>] [-d <date>] [-sell]

  Appends a holding. The derived value and returns are computed right away.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.holdingFlags.SetFlags(f, date.Today().String())
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	h := cartera.Holding{
		Date:         on,
		Ticker:       c.ticker,
		BaseAmount:   c.amount,
		Shares:       c.shares,
		CostPrice:    c.cost,
		CurrentPrice: c.price,
	}
	if c.sell {
		h = h.AsSale()
	}
	if err := h.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	i, err := repo.AddHolding(h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding holding: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added holding #%d: %s\n", i, renderer.Holding(h))
	return subcommands.ExitSuccess
}

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	holdingFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "modify a holding" }
func (*editCmd) Usage() string {
	return `cartera edit [-d <date>] [-t <ticker>] [-amount <usd>] [-shares <count>] [-cost <price>] [-price <price>] [-sell] <position>

  Replaces the fields given as flags of the holding at position, and keeps the others.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.holdingFlags.SetFlags(f, "")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	i, err := parseIndex(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	h, err := repo.Holding(i)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if h, err = c.apply(h, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := repo.UpdateHolding(i, h); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating holding: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated holding #%d: %s\n", i, renderer.Holding(h))
	return subcommands.ExitSuccess
}

// rmCmd holds the flags for the 'rm' subcommand.
type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a holding" }
func (*rmCmd) Usage() string {
	return `cartera rm <position>

  Removes the holding at position. The following holdings move up by one.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	i, err := parseIndex(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	h, err := repo.Holding(i)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := repo.RemoveHolding(i); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing holding: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed holding #%d: %s\n", i, renderer.Holding(h))
	return subcommands.ExitSuccess
}
