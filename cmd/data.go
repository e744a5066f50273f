package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/importer"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	usd string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import the investments workbook" }
func (*importCmd) Usage() string {
	return `cartera import <workbook.xlsx>
cartera import [-usd <purchases.csv>] <holdings.csv>

  Replaces all the holdings with the rows of the investments workbook, and
  the dollar purchases with the ones found in the same sheet.
  A CSV export of the investments sheet is read too. With -usd, the dollar
  purchases are read from a CSV export of their sheet.
  The purchases are kept if none is valid. Nothing is changed if no holding
  can be read.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.usd, "usd", "", "CSV export of the dollar purchases sheet")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one holdings file")
		return subcommands.ExitUsageError
	}
	workbook := isWorkbook(f.Arg(0))
	if workbook && c.usd != "" {
		fmt.Fprintln(os.Stderr, "Error: -usd only applies to CSV files, the workbook holds the purchases")
		return subcommands.ExitUsageError
	}

	holdings, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening holdings file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer holdings.Close()

	var res cartera.ImportResult
	if workbook {
		res, err = importer.ReadWorkbook(holdings)
	} else {
		var purchases io.Reader
		if c.usd != "" {
			file, err := os.Open(c.usd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening purchases file: %v\n", err)
				return subcommands.ExitFailure
			}
			defer file.Close()
			purchases = file
		}
		res, err = importer.Read(holdings, purchases)
	}
	if errors.Is(err, cartera.ErrNoRows) {
		fmt.Fprintf(os.Stderr, "Error: no holding found in %q, nothing imported\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading files: %v\n", err)
		return subcommands.ExitFailure
	}

	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	if err := repo.Import(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d holdings and %d dollar purchases\n", len(res.Holdings), len(res.Purchases))
	return subcommands.ExitSuccess
}

// isWorkbook reports whether name is an Excel workbook, by its extension.
func isWorkbook(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// resetCmd holds the flags for the 'reset' subcommand.
type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "restore the bundled sample portfolio" }
func (*resetCmd) Usage() string {
	return `cartera reset -f

  Replaces the holdings and the dollar purchases with the bundled sample data.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Confirm that the current data is to be replaced")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		fmt.Fprintln(os.Stderr, "Error: reset replaces all your data, use -f to confirm")
		return subcommands.ExitUsageError
	}

	repo, closeRepo, err := OpenRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeRepo()

	if err := repo.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Restored %d holdings and %d dollar purchases\n", len(repo.Holdings()), len(repo.Purchases()))
	return subcommands.ExitSuccess
}
