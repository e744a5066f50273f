package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio totals" }
func (*summaryCmd) Usage() string {
	return `cartera summary

  Displays the current value, the invested capital, the gain or loss and the
  blended return of the portfolio.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	printMarkdown(renderer.SummaryMarkdown(cartera.Summarize(repo.Holdings())))
	return subcommands.ExitSuccess
}

// alertsCmd holds the flags for the 'alerts' subcommand.
type alertsCmd struct{}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "list the holdings to take profits from or to review" }
func (*alertsCmd) Usage() string {
	return `cartera alerts

  Lists the holdings whose return is above +20% or below -10%.
`
}

func (*alertsCmd) SetFlags(f *flag.FlagSet) {}

func (*alertsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	printMarkdown(renderer.AlertsMarkdown(cartera.Alerts(repo.Holdings())))
	return subcommands.ExitSuccess
}

// allocationCmd holds the flags for the 'allocation' subcommand.
type allocationCmd struct{}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the current value per ticker" }
func (*allocationCmd) Usage() string {
	return `cartera allocation

  Displays the current value of every ticker and its weight in the portfolio.
`
}

func (*allocationCmd) SetFlags(f *flag.FlagSet) {}

func (*allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	printMarkdown(renderer.AllocationMarkdown(cartera.Allocation(repo.Holdings())))
	return subcommands.ExitSuccess
}
