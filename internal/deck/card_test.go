package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "pictures and aces",
			input: "As Kd Qh Jc",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Diamonds},
				{Rank: Queen, Suit: Hearts},
				{Rank: Jack, Suit: Clubs},
			},
		},
		{
			name:  "tens in both notations",
			input: "Th 10s",
			expected: []Card{
				{Rank: Ten, Suit: Hearts},
				{Rank: Ten, Suit: Spades},
			},
		},
		{
			name:  "case insensitive",
			input: "8S 2d",
			expected: []Card{
				{Rank: Eight, Suit: Spades},
				{Rank: Two, Suit: Diamonds},
			},
		},
		{
			name:     "empty",
			input:    "",
			expected: []Card{},
		},
		{
			name:    "invalid rank",
			input:   "Xs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "one is not a rank",
			input:   "1s",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cards)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Equal(t, []Card{{Rank: Ace, Suit: Spades}}, MustParseCards("As"))
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestRankPoints(t *testing.T) {
	expected := map[Rank]int{
		Ace: 1, Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7,
		Eight: 8, Nine: 9, Ten: 10, Jack: 10, Queen: 10, King: 10,
	}
	for rank, points := range expected {
		assert.Equal(t, points, rank.Points(), "rank %s", rank)
	}
	assert.Equal(t, 0, HiddenRank.Points())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts).String())
	assert.Equal(t, "K♦", NewCard(King, Diamonds).String())
	assert.Equal(t, "??", Hidden.String())
	assert.True(t, Hidden.IsHidden())
	assert.False(t, NewCard(Two, Clubs).IsHidden())
}

func TestCardEquality(t *testing.T) {
	assert.Equal(t, NewCard(Seven, Clubs), Card{Rank: Seven, Suit: Clubs})
	assert.NotEqual(t, NewCard(Seven, Clubs), NewCard(Seven, Spades))
}
