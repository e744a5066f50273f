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

// usdCmd holds the flags for the 'usd' subcommand.
type usdCmd struct{}

func (*usdCmd) Name() string     { return "usd" }
func (*usdCmd) Synopsis() string { return "display the dollar purchases and their average rate" }
func (*usdCmd) Usage() string {
	return `cartera usd

  Displays the total of dollars bought, what they cost in CLP, the average
  rate paid, and every purchase with its position.
`
}

func (*usdCmd) SetFlags(f *flag.FlagSet) {}

func (*usdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	purchases := repo.Purchases()
	printMarkdown(renderer.CurrencyMarkdown(purchases, cartera.SummarizeCurrency(purchases)))
	return subcommands.ExitSuccess
}

// purchaseFlags are the fields of a currency purchase entered by hand.
type purchaseFlags struct {
	date   string
	amount float64
	rate   float64
}

func (c *purchaseFlags) SetFlags(f *flag.FlagSet, defaultDate string) {
	f.StringVar(&c.date, "d", defaultDate, "Date of the purchase (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "amount", 0, "Amount of USD bought")
	f.Float64Var(&c.rate, "rate", 0, "CLP paid per USD")
}

// apply sets on p the fields whose flag is set in f.
func (c *purchaseFlags) apply(p cartera.CurrencyPurchase, f *flag.FlagSet) (cartera.CurrencyPurchase, error) {
	var err error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "d":
			p.Date, err = date.Parse(c.date)
		case "amount":
			p.Amount = c.amount
		case "rate":
			p.Rate = c.rate
		}
	})
	return p, err
}

func purchaseLine(p cartera.CurrencyPurchase) string {
	return fmt.Sprintf("%s on %s at %s", cartera.USD(p.Amount), p.Date, cartera.CLP(p.Rate))
}

// usdAddCmd holds the flags for the 'usd-add' subcommand.
type usdAddCmd struct {
	purchaseFlags
}

func (*usdAddCmd) Name() string     { return "usd-add" }
func (*usdAddCmd) Synopsis() string { return "record a dollar purchase" }
func (*usdAddCmd) Usage() string {
	return `cartera usd-add -amount <usd> -rate <clp> [-d <date>]

  Appends a dollar purchase.
`
}

func (c *usdAddCmd) SetFlags(f *flag.FlagSet) {
	c.purchaseFlags.SetFlags(f, date.Today().String())
}

func (c *usdAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	p := cartera.CurrencyPurchase{Date: on, Amount: c.amount, Rate: c.rate}
	if err := p.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	i, err := repo.AddPurchase(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding purchase: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added purchase #%d: %s\n", i, purchaseLine(p))
	return subcommands.ExitSuccess
}

// usdEditCmd holds the flags for the 'usd-edit' subcommand.
type usdEditCmd struct {
	purchaseFlags
}

func (*usdEditCmd) Name() string     { return "usd-edit" }
func (*usdEditCmd) Synopsis() string { return "modify a dollar purchase" }
func (*usdEditCmd) Usage() string {
	return `cartera usd-edit [-d <date>] [-amount <usd>] [-rate <clp>] <position>

  Replaces the fields given as flags of the purchase at position, and keeps the others.
`
}

func (c *usdEditCmd) SetFlags(f *flag.FlagSet) {
	c.purchaseFlags.SetFlags(f, "")
}

func (c *usdEditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	p, err := repo.Purchase(i)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if p, err = c.apply(p, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := repo.UpdatePurchase(i, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating purchase: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated purchase #%d: %s\n", i, purchaseLine(p))
	return subcommands.ExitSuccess
}

// usdRmCmd holds the flags for the 'usd-rm' subcommand.
type usdRmCmd struct{}

func (*usdRmCmd) Name() string     { return "usd-rm" }
func (*usdRmCmd) Synopsis() string { return "remove a dollar purchase" }
func (*usdRmCmd) Usage() string {
	return `cartera usd-rm <position>

  Removes the dollar purchase at position.
`
}

func (*usdRmCmd) SetFlags(f *flag.FlagSet) {}

func (*usdRmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	p, err := repo.Purchase(i)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := repo.RemovePurchase(i); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing purchase: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed purchase #%d: %s\n", i, purchaseLine(p))
	return subcommands.ExitSuccess
}
