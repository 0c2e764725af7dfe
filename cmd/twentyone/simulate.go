package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"

	"github.com/lox/twentyone/internal/display"
	"github.com/lox/twentyone/internal/fileutil"
	"github.com/lox/twentyone/internal/simulator"
)

// SimulateCmd plays all-automated sessions concurrently and reports how the
// house fared.
type SimulateCmd struct {
	Sessions  int           `default:"1000" help:"Number of sessions to play"`
	Workers   int           `default:"0" help:"Sessions played at once (0 = number of CPUs)"`
	Bots      int           `default:"7" help:"Automated players per session"`
	MaxRounds int           `default:"1000" help:"Stop a session after this many rounds"`
	Timeout   time.Duration `default:"30s" help:"Abandon a session that runs longer than this"`
	Seed      *int64        `help:"Deterministic RNG seed (optional)"`
	Config    string        `type:"path" default:"${config_file}" help:"HCL config file"`
	Report    string        `type:"path" help:"Also write the results as JSON to this file"`
	NoColor   bool          `help:"Disable colours"`
	LogFlags
}

func (c *SimulateCmd) Run() error {
	cfg, err := loadConfig(c.Config, c.LogFlags)
	if err != nil {
		return err
	}

	logger, closer, err := setupLogger(cfg, "SIM")
	if err != nil {
		return err
	}
	defer closer.Close()

	_, seed := seeded(c.Seed)
	logger.Info("Starting simulation", "sessions", c.Sessions, "workers", c.Workers, "bots", c.Bots, "seed", seed)

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	start := time.Now()
	sim := simulator.New(simulator.Config{
		Sessions:      c.Sessions,
		Workers:       c.Workers,
		Bots:          c.Bots,
		BotNames:      cfg.Bots.Names,
		StartingChips: cfg.Session.StartingChips,
		MaxRounds:     c.MaxRounds,
		Seed:          seed,
		Timeout:       c.Timeout,
		Logger:        logger,
	})
	tracker, err := sim.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Simulation interrupted")
		return nil
	}
	if err != nil {
		logger.Error("Simulation failed", "error", err)
		return err
	}

	overall := tracker.Overall()
	elapsed := time.Since(start)
	logger.Info("Simulation complete", "rounds", overall.Rounds, "net", overall.Net, "elapsed", elapsed)

	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if c.NoColor {
		profile = termenv.Ascii
	}
	console := display.NewConsole(os.Stdout, profile)
	console.Print(console.Summary(tracker))

	// Automated players bet the minimum on one hand per round and never
	// split, so the mean loss per round is the house edge per chip.
	low, high := overall.ConfidenceInterval95()
	console.Print(fmt.Sprintf("House edge: %.2f%% (95%% CI %.2f%% to %.2f%%) over %d hands in %s",
		-100*overall.Mean(), -100*high, -100*low, overall.Hands, elapsed.Round(time.Millisecond)))

	if c.Report != "" {
		if err := fileutil.WriteJSONAtomic(c.Report, tracker.Report()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("Report written", "file", c.Report)
	}
	return nil
}
