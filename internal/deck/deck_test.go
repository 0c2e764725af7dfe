package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/randutil"
)

func TestNewShuffledDeckHasEveryCardOnce(t *testing.T) {
	d := NewShuffledDeck(randutil.New(42))
	require.Equal(t, Size, d.CardsRemaining())

	seen := make(map[Card]bool, Size)
	for !d.IsEmpty() {
		before := d.CardsRemaining()
		card, ok := d.Deal()
		require.True(t, ok)
		assert.Equal(t, before-1, d.CardsRemaining())
		assert.False(t, card.IsHidden(), "sentinel card dealt")
		assert.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true
	}
	assert.Len(t, seen, Size)
}

func TestNewShuffledDeckIsDeterministicPerSeed(t *testing.T) {
	a := NewShuffledDeck(randutil.New(7))
	b := NewShuffledDeck(randutil.New(7))
	c := NewShuffledDeck(randutil.New(8))

	var sameAsB, sameAsC = true, true
	for !a.IsEmpty() {
		x, _ := a.Deal()
		y, _ := b.Deal()
		z, _ := c.Deal()
		sameAsB = sameAsB && x == y
		sameAsC = sameAsC && x == z
	}
	assert.True(t, sameAsB)
	assert.False(t, sameAsC)
}

func TestDealFromEmptyDeck(t *testing.T) {
	d := New(MustParseCards("As")...)
	card, ok := d.Deal()
	require.True(t, ok)
	assert.Equal(t, NewCard(Ace, Spades), card)

	_, ok = d.Deal()
	assert.False(t, ok)
	assert.True(t, d.IsEmpty())
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	cards := MustParseCards("2c 3d 4h")
	d := New(cards...)
	cards[0] = NewCard(King, Spades) // deck keeps its own copy

	for _, want := range MustParseCards("2c 3d 4h") {
		got, ok := d.Deal()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestNewShuffledDeckRequiresRNG(t *testing.T) {
	assert.Panics(t, func() { NewShuffledDeck(nil) })
}
