// Package simulator plays many all-automated sessions concurrently to
// measure how the house fares against the fixed automated strategy.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/randutil"
	"github.com/lox/twentyone/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions      int
	Workers       int // 0 means one per CPU
	Bots          int
	BotNames      []string
	StartingChips int
	MaxRounds     int
	Seed          int64
	Timeout       time.Duration // per session; 0 means none
	Logger        *log.Logger
}

// Simulator runs blackjack session simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if len(config.BotNames) == 0 {
		config.BotNames = game.BotNames
	}
	if config.StartingChips == 0 {
		config.StartingChips = game.DefaultStartingChips
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every session and returns the combined statistics. Session n
// always draws from the same RNG stream for a given seed, so results do not
// depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Tracker, error) {
	if s.config.Sessions < 1 {
		return nil, errors.New("sessions must be positive")
	}
	if s.config.Bots < 1 || s.config.Bots > len(s.config.BotNames) {
		return nil, fmt.Errorf("bots must be between 1 and %d", len(s.config.BotNames))
	}

	total := statistics.NewTracker()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := 0; i < s.config.Sessions; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			tracker, err := s.playSessionWithTimeout(gctx, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			total.Merge(tracker)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	overall := total.Overall()
	if err := overall.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

// playSessionWithTimeout runs one session, abandoning it if it outlives
// the configured timeout.
func (s *Simulator) playSessionWithTimeout(ctx context.Context, n int) (*statistics.Tracker, error) {
	if s.config.Timeout <= 0 {
		return s.playSession(ctx, n)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	tracker, err := s.playSession(ctx, n)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("timed out after %v (seed: %d)", s.config.Timeout, s.config.Seed)
	}
	return tracker, err
}

func (s *Simulator) playSession(ctx context.Context, n int) (*statistics.Tracker, error) {
	rng := randutil.Derive(s.config.Seed, n)

	players, err := game.NewPlayers(nil, s.config.Bots, s.config.BotNames, s.config.StartingChips, rng)
	if err != nil {
		return nil, err
	}

	tracker := statistics.NewTracker()
	bus := game.NewEventBus()
	bus.Subscribe(tracker)

	logger := s.config.Logger.With("session", n)

	// Thousands of sessions would bury the log in per-round lines.
	engineLogger := logger.With()
	if engineLogger.GetLevel() < log.WarnLevel {
		engineLogger.SetLevel(log.WarnLevel)
	}

	engine := game.NewEngine(rng, engineLogger, game.WithEventBus(bus))
	session := game.NewSession(engine, players, nil, rng, engineLogger, game.WithMaxRounds(s.config.MaxRounds))
	if err := session.Run(ctx); err != nil {
		return nil, err
	}

	logger.Debug("Session finished", "rounds", session.Rounds(), "remaining", len(session.Players()))
	return tracker, nil
}
