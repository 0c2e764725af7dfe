package game

import (
	"context"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
)

// SessionOption configures a Session during creation.
type SessionOption func(*Session)

// WithMaxRounds stops the session after n rounds even if players remain.
// Zero means no limit.
func WithMaxRounds(n int) SessionOption {
	return func(s *Session) { s.maxRounds = n }
}

// Session plays rounds until every player is broke. Seat order is
// reshuffled before each round with the shared RNG.
type Session struct {
	engine    *Engine
	players   []*Player
	agents    map[string]Agent
	rng       *rand.Rand
	logger    *log.Logger
	maxRounds int
	rounds    int
}

// NewSession creates a session over players. The slice is copied; the
// players themselves are shared and their chips change as rounds settle.
func NewSession(engine *Engine, players []*Player, agents map[string]Agent, rng *rand.Rand, logger *log.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = engine.logger
	}
	s := &Session{
		engine:  engine,
		players: slices.Clone(players),
		agents:  agents,
		rng:     rng,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Players returns the players still at the table.
func (s *Session) Players() []*Player {
	return slices.Clone(s.players)
}

// Rounds returns how many rounds have completed.
func (s *Session) Rounds() int {
	return s.rounds
}

// Run plays rounds until nobody has chips left, the round limit is hit, or
// a round fails. End of input from a human surfaces as ErrEndOfInput.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		names := make([]string, len(s.players))
		for i, p := range s.players {
			names[i] = p.Name
		}
		s.engine.bus.Publish(SessionEndEvent{stamp: now(), Rounds: s.rounds, Remaining: names})
	}()

	for len(s.players) > 0 {
		if s.maxRounds > 0 && s.rounds >= s.maxRounds {
			s.logger.Info("Round limit reached", "rounds", s.rounds, "remaining", len(s.players))
			return nil
		}

		s.rng.Shuffle(len(s.players), func(i, j int) {
			s.players[i], s.players[j] = s.players[j], s.players[i]
		})

		if _, err := s.engine.PlayRound(ctx, s.players, s.agents); err != nil {
			return err
		}
		s.rounds++

		s.removeBroke()

		if len(s.players) > 0 {
			if err := s.engine.pacer.Pause(ctx, s.engine.pacer.Pacing().BetweenRounds, "between-rounds"); err != nil {
				return err
			}
		}
	}

	s.logger.Info("Everyone is broke", "rounds", s.rounds)
	return nil
}

func (s *Session) removeBroke() {
	s.players = slices.DeleteFunc(s.players, func(p *Player) bool {
		if !p.IsBroke() {
			return false
		}
		s.logger.Info("Player is broke", "player", p.Name, "rounds", s.rounds)
		s.engine.bus.Publish(PlayerBrokeEvent{stamp: now(), Player: p.Name, Rounds: s.rounds})
		return true
	})
}
