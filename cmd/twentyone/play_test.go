package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/config"
	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/prompt"
	"github.com/lox/twentyone/internal/randutil"
)

func TestSeatPlayersAsksForMissingCounts(t *testing.T) {
	var out strings.Builder
	in := prompt.New(strings.NewReader("-1\n2\n9\n3\nAnn\nAnn\n"), &out)

	cmd := &PlayCmd{}
	players, err := cmd.seatPlayers(in, config.Default(), randutil.New(3))
	require.NoError(t, err)
	require.Len(t, players, 5)

	assert.Equal(t, "Ann", players[0].Name)
	assert.Equal(t, "Ann #2", players[1].Name)
	for _, p := range players[2:] {
		assert.Equal(t, game.Automated, p.Kind)
	}

	transcript := out.String()
	assert.Contains(t, transcript, "Number of human players?")
	assert.Contains(t, transcript, "That can't be negative.")
	assert.Contains(t, transcript, "Number of AI players?")
	assert.Contains(t, transcript, "There are only 7 seats for them.")
	assert.Contains(t, transcript, "Enter a name for human player #2: ")
}

func TestSeatPlayersUsesFlags(t *testing.T) {
	humans, bots := 0, 2
	cmd := &PlayCmd{Humans: &humans, Bots: &bots}

	players, err := cmd.seatPlayers(prompt.New(strings.NewReader(""), &strings.Builder{}), config.Default(), randutil.New(3))
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func TestSeatPlayersRefusesEmptyTable(t *testing.T) {
	humans, bots := 0, 0
	cmd := &PlayCmd{Humans: &humans, Bots: &bots}

	_, err := cmd.seatPlayers(prompt.New(strings.NewReader(""), &strings.Builder{}), config.Default(), randutil.New(3))
	assert.ErrorIs(t, err, errNoPlayers)
}

func TestSeatPlayersRejectsTooManyBots(t *testing.T) {
	humans, bots := 1, 8
	cmd := &PlayCmd{Humans: &humans, Bots: &bots}

	_, err := cmd.seatPlayers(prompt.New(strings.NewReader(""), &strings.Builder{}), config.Default(), randutil.New(3))
	assert.Error(t, err)
}

func TestSeatPlayersEndOfInput(t *testing.T) {
	cmd := &PlayCmd{}
	_, err := cmd.seatPlayers(prompt.New(strings.NewReader("1\n"), &strings.Builder{}), config.Default(), randutil.New(3))
	assert.ErrorIs(t, err, prompt.ErrEndOfInput)
}
