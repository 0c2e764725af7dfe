package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. The zero value is the face-down marker.
type Suit int

const (
	HiddenSuit Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

// Suits lists the four real suits in deck construction order.
var Suits = [...]Suit{Hearts, Clubs, Diamonds, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Ranks are numbered so that the numeral ranks
// match their face value; the zero value is the face-down marker.
type Rank int

const (
	HiddenRank Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists the thirteen real ranks, aces low.
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten:
		return fmt.Sprintf("%d", int(r))
	default:
		return "?"
	}
}

// IsPicture reports whether the rank is a Jack, Queen or King.
func (r Rank) IsPicture() bool {
	return r == Jack || r == Queen || r == King
}

// Points returns the blackjack value of a rank with aces counted low:
// Ace is 1, numerals their face value and pictures 10.
func (r Rank) Points() int {
	switch {
	case r.IsPicture():
		return 10
	case r >= Ace && r <= Ten:
		return int(r)
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// Hidden is the face-down card shown in place of the dealer's hole card.
var Hidden = Card{}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsHidden reports whether the card is the face-down marker.
func (c Card) IsHidden() bool {
	return c == Hidden
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a two-part card such as "As", "Td", "10h" or "qc".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rankPart, suitPart := strings.ToUpper(s[:len(s)-1]), strings.ToLower(s[len(s)-1:])

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		if len(rankPart) == 1 && rankPart[0] >= '2' && rankPart[0] <= '9' {
			rank = Rank(rankPart[0] - '0')
		} else {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
	}

	var suit Suit
	switch suitPart {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a whitespace separated list of cards, e.g. "As Kd 8h".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
