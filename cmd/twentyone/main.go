package main

import (
	"errors"

	"github.com/alecthomas/kong"

	"github.com/lox/twentyone/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// errNoPlayers ends the program with a non-zero status after "No." has
// been printed.
var errNoPlayers = errors.New("no players")

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Sit down at the table (default)"`
	Simulate SimulateCmd      `cmd:"" help:"Play many automated sessions and report the house edge"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("twentyone"),
		kong.Description("Multiplayer blackjack against the house"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run()
	if errors.Is(err, errNoPlayers) {
		ctx.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}
