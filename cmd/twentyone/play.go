package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	rand "math/rand/v2"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/twentyone/internal/config"
	"github.com/lox/twentyone/internal/display"
	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/prompt"
	"github.com/lox/twentyone/internal/randutil"
	"github.com/lox/twentyone/internal/statistics"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd runs an interactive session on the terminal.
type PlayCmd struct {
	Humans  *int   `help:"Number of human players (asked for when omitted)"`
	Bots    *int   `help:"Number of automated players (asked for when omitted)"`
	Seed    *int64 `help:"Deterministic RNG seed (optional)"`
	Config  string `type:"path" default:"${config_file}" help:"HCL config file"`
	NoPause bool   `help:"Skip the pauses between moves"`
	NoColor bool   `help:"Disable colours"`
	LogFlags
}

func (c *PlayCmd) Run() error {
	cfg, err := loadConfig(c.Config, c.LogFlags)
	if err != nil {
		return err
	}

	logger, closer, err := setupLogger(cfg, "MAIN")
	if err != nil {
		return err
	}
	defer closer.Close()

	rng, seed := seeded(c.Seed)
	logger.Info("Starting session", "seed", seed, "config", c.Config)

	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if c.NoColor {
		profile = termenv.Ascii
		titleStyle = titleStyle.UnsetForeground().UnsetBackground()
	}
	fmt.Println(titleStyle.Render("♠ ♥ Twenty-One ♦ ♣"))

	in := prompt.New(os.Stdin, os.Stdout)
	players, err := c.seatPlayers(in, cfg, rng)
	if errors.Is(err, prompt.ErrEndOfInput) {
		logger.Info("Input closed during setup")
		return nil
	}
	if err != nil {
		return err
	}

	var pacer *game.Pacer
	if !c.NoPause {
		pacing, err := cfg.PacingDurations()
		if err != nil {
			return err
		}
		pacer = game.NewPacer(quartz.NewReal(), pacing)
	}

	console := display.NewConsole(os.Stdout, profile)
	tracker := statistics.NewTracker()
	bus := game.NewEventBus()
	bus.Subscribe(console)
	bus.Subscribe(tracker)

	agents := make(map[string]game.Agent)
	for _, p := range players {
		if p.Kind == game.Human {
			agents[p.Name] = game.NewHumanAgent(p.Name, in)
		}
		logger.Info("Player seated", "player", p.Name, "kind", p.Kind, "chips", p.Chips)
	}

	engine := game.NewEngine(rng, logger.WithPrefix("ENGINE"),
		game.WithEventBus(bus),
		game.WithPacer(pacer),
		game.WithDefaultAgent(game.NewAutoAgent(pacer)),
	)
	session := game.NewSession(engine, players, agents, rng, logger.WithPrefix("SESSION"))

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	err = session.Run(ctx)
	console.Print(console.Summary(tracker))

	switch {
	case errors.Is(err, game.ErrEndOfInput):
		logger.Info("Input closed, leaving the table", "rounds", session.Rounds())
		return nil
	case errors.Is(err, context.Canceled):
		logger.Info("Interrupted", "rounds", session.Rounds())
		return nil
	case err != nil:
		logger.Error("Session failed", "error", err)
		return err
	}
	logger.Info("Session complete", "rounds", session.Rounds())
	return nil
}

// seatPlayers asks for whatever the flags left out and creates the players.
func (c *PlayCmd) seatPlayers(in *prompt.Prompter, cfg *config.Config, rng *rand.Rand) ([]*game.Player, error) {
	humans, err := count(in, c.Humans, "Number of human players?", -1)
	if err != nil {
		return nil, err
	}
	bots, err := count(in, c.Bots, "Number of AI players?", len(cfg.Bots.Names))
	if err != nil {
		return nil, err
	}

	if humans+bots == 0 {
		fmt.Println("No.")
		return nil, errNoPlayers
	}

	names := make([]string, humans)
	for i := range names {
		names[i], err = in.Line(fmt.Sprintf("Enter a name for human player #%d: ", i+1))
		if err != nil {
			return nil, err
		}
	}

	return game.NewPlayers(names, bots, cfg.Bots.Names, cfg.Session.StartingChips, rng)
}

// count returns the flag value when set, otherwise asks. A negative max
// means unbounded.
func count(in *prompt.Prompter, flag *int, question string, max int) (int, error) {
	verify := func(n int) error {
		if n < 0 {
			return errors.New("that can't be negative")
		}
		if max >= 0 && n > max {
			return fmt.Errorf("there are only %d seats for them", max)
		}
		return nil
	}

	if flag != nil {
		if err := verify(*flag); err != nil {
			return 0, fmt.Errorf("%s %d: %w", question, *flag, err)
		}
		return *flag, nil
	}
	return in.Int(question, verify)
}

func seeded(seed *int64) (*rand.Rand, int64) {
	if seed != nil {
		return randutil.New(*seed), *seed
	}
	return randutil.NewFromEntropy()
}
