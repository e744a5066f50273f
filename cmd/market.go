package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// refreshCmd holds the flags for the 'refresh' subcommand.
type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "update the current price of every holding" }
func (*refreshCmd) Usage() string {
	return `cartera [-provider <name>] [-api-key <key>] refresh

  Quotes every distinct ticker of the holdings, one at a time at the pace
  the provider allows, then updates all the holdings at once.
  Holdings without a quote keep their price.
`
}

func (*refreshCmd) SetFlags(f *flag.FlagSet) {}

func (*refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	provider, err := newProvider()
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

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tickers := cartera.Tickers(repo.Holdings())
	res, err := cartera.NewRefresher(repo, provider, cartera.WithRefreshLogger(logger())).Refresh(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RefreshMarkdown(res, tickers))
	return subcommands.ExitSuccess
}

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	schedule string
	now      bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh prices periodically until interrupted" }
func (*watchCmd) Usage() string {
	return `cartera [-provider <name>] [-api-key <key>] watch [-s <schedule>] [-now]

  Runs a price refresh on schedule until interrupted, logging every pass
  and every alert raised by the new prices.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "s", cartera.DefaultWatchSchedule, "Cron schedule of the refreshes, e.g. '@every 1h' or '0 9-17 * * 1-5'")
	f.BoolVar(&c.now, "now", false, "Run a refresh before the first scheduled one")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	provider, err := newProvider()
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

	log := logger()
	repo.OnChange(func(change cartera.Change) {
		if change.Key != cartera.HoldingsKey {
			return
		}
		for _, a := range cartera.Alerts(repo.Holdings()) {
			log.Warn().Str("ticker", a.Ticker).Int("position", a.Index).Msg(renderer.Alert(a))
		}
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := cartera.NewRefresher(repo, provider, cartera.WithRefreshLogger(log))
	if c.now {
		if _, err := refresher.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("refresh failed")
		}
	}
	if err := refresher.Watch(ctx, c.schedule); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
