package deck

import (
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck.
const Size = 52

// Deck is an ordered pile of cards dealt from the top. A deck belongs to a
// single round and is never reshuffled or refilled.
type Deck struct {
	cards []Card
}

// NewShuffledDeck creates a full 52-card deck permuted with rng.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}

	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	// Fisher-Yates
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return &Deck{cards: cards}
}

// New creates a stacked deck that deals the given cards in order.
func New(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
