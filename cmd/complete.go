package cmd

import (
	"flag"

	"github.com/etnz/cartera/docs"
	"github.com/etnz/cartera/quote"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion: the global
// flags, every subcommand and their flags.
func Completion() *complete.Command {
	c := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	c.Flags["store"] = predict.Set{storeDir, storeSQLite, storeMemory}
	c.Flags["provider"] = predict.Set(quote.Names())
	c.Flags["data"] = predict.Files("*")

	for _, g := range groups {
		for _, cmd := range g.commands {
			fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
			cmd.SetFlags(fs)
			c.Sub[cmd.Name()] = &complete.Command{Flags: flags(fs)}
		}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		c.Sub["topic"].Args = predict.Set(topics)
	}
	imp := c.Sub["import"]
	imp.Args = predict.Files("*")
	imp.Flags["usd"] = predict.Files("*.csv")
	return c
}

// flags returns a predictor for every flag of fs.
func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
