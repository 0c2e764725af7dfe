package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/game"
)

func TestRunCombinesSessions(t *testing.T) {
	sim := New(Config{Sessions: 20, Workers: 4, Bots: 3, MaxRounds: 200, Seed: 42})

	tracker, err := sim.Run(context.Background())
	require.NoError(t, err)

	overall := tracker.Overall()
	assert.Positive(t, overall.Rounds)
	assert.Equal(t, overall.Rounds, overall.Hands, "automated players never split")
	assert.Zero(t, overall.Splits)
	assert.Negative(t, overall.Net, "always sticking loses to the house")
	for _, name := range tracker.Players() {
		assert.Contains(t, game.BotNames, name)
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) int {
		tracker, err := New(Config{Sessions: 8, Workers: workers, Bots: 2, MaxRounds: 50, Seed: 7}).Run(context.Background())
		require.NoError(t, err)
		overall := tracker.Overall()
		return overall.Net
	}

	assert.Equal(t, run(1), run(8))
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Sessions: 0, Bots: 1}).Run(context.Background())
	assert.Error(t, err)

	_, err = New(Config{Sessions: 1, Bots: len(game.BotNames) + 1}).Run(context.Background())
	assert.Error(t, err)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Sessions: 5, Bots: 2, Seed: 1}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionTimeout(t *testing.T) {
	sim := New(Config{Sessions: 1, Bots: 1, Seed: 1, Timeout: time.Nanosecond})

	_, err := sim.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
