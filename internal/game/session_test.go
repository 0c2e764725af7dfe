package game

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/prompt"
	"github.com/lox/twentyone/internal/randutil"
)

func TestSessionRunsUntilEveryoneIsBroke(t *testing.T) {
	rec := &recorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	rng := randutil.New(5)
	engine := NewEngine(rng, nil, WithEventBus(bus))
	players := []*Player{
		NewPlayer("Smenge", Automated, 3),
		NewPlayer("Boddit", Automated, 3),
	}

	session := NewSession(engine, players, nil, rng, nil)
	require.NoError(t, session.Run(context.Background()))

	assert.Empty(t, session.Players())
	assert.Positive(t, session.Rounds())
	assert.Equal(t, 2, rec.count(EventTypePlayerBroke))
	assert.Equal(t, session.Rounds(), rec.count(EventTypeRoundEnd))
	for _, p := range players {
		assert.Zero(t, p.Chips)
	}

	last := rec.events[len(rec.events)-1]
	require.IsType(t, SessionEndEvent{}, last)
	assert.Empty(t, last.(SessionEndEvent).Remaining)
}

func TestSessionRoundLimit(t *testing.T) {
	rng := randutil.New(6)
	engine := NewEngine(rng, nil)
	players := []*Player{NewPlayer("Dilpo", Automated, 1000)}

	session := NewSession(engine, players, nil, rng, nil, WithMaxRounds(3))
	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, 3, session.Rounds())
	assert.Len(t, session.Players(), 1)
}

func TestSessionStopsWhenHumanWalksAway(t *testing.T) {
	rng := randutil.New(7)
	engine := NewEngine(rng, nil)
	players := []*Player{
		NewPlayer("Ann", Human, 50),
		NewPlayer("Klumph", Automated, 50),
	}
	agents := map[string]Agent{
		"Ann": NewHumanAgent("Ann", prompt.New(strings.NewReader(""), &strings.Builder{})),
	}

	err := NewSession(engine, players, agents, rng, nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestNewPlayers(t *testing.T) {
	players, err := NewPlayers([]string{"Ann", "Bob", "Ann", "Ann"}, 3, BotNames, 50, randutil.New(1))
	require.NoError(t, err)
	require.Len(t, players, 7)

	var names []string
	for _, p := range players[:4] {
		names = append(names, p.Name)
		assert.Equal(t, Human, p.Kind)
		assert.Equal(t, 50, p.Chips)
	}
	assert.Equal(t, []string{"Ann", "Bob", "Ann #2", "Ann #3"}, names)

	seen := map[string]bool{}
	for _, p := range players[4:] {
		assert.Equal(t, Automated, p.Kind)
		assert.Contains(t, BotNames, p.Name)
		assert.False(t, seen[p.Name], "bot name %s reused", p.Name)
		seen[p.Name] = true
	}
}

func TestNewPlayersRejectsBadCounts(t *testing.T) {
	_, err := NewPlayers(nil, 0, BotNames, 50, randutil.New(1))
	assert.ErrorIs(t, err, ErrNoPlayers)

	_, err = NewPlayers(nil, len(BotNames)+1, BotNames, 50, randutil.New(1))
	assert.Error(t, err)
}
