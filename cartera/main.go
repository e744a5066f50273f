package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cartera/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// completion exits here when the shell asks for it.
	cmd.Completion().Complete(path.Base(os.Args[0]))

	// a .env file in the working directory is optional.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
