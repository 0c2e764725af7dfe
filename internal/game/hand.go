package game

import (
	"fmt"

	"github.com/lox/twentyone/internal/deck"
)

// MinimumBet is the smallest wager a hand accepts.
const MinimumBet = 1

// Hand is one set of cards in a round and the chips riding on it. The owner
// is shared: after a split two hands point at the same Player.
type Hand struct {
	Owner *Player
	Cards []deck.Card
	Wager int

	stuck bool
}

// NewHand creates an empty hand for owner.
func NewHand(owner *Player, cards ...deck.Card) *Hand {
	return &Hand{Owner: owner, Cards: cards}
}

// Score returns the hand's current score.
func (h *Hand) Score() Score {
	return ScoreCards(h.Cards)
}

// IsResolved reports whether the hand can take no more actions: it stuck,
// busted, or holds 21 or blackjack.
func (h *Hand) IsResolved() bool {
	if h.stuck {
		return true
	}
	s := h.Score()
	return s.IsBust() || s.IsBlackjack() || s.IsTwentyone()
}

// PlaceBet moves amount chips from the owner onto this hand.
func (h *Hand) PlaceBet(amount, minimum int) error {
	if err := ValidateBet(h.Owner, amount, minimum); err != nil {
		return err
	}
	h.Owner.Chips -= amount
	h.Wager += amount
	return nil
}

// ValidateBet checks amount against the minimum bet and the player's chips.
func ValidateBet(p *Player, amount, minimum int) error {
	if amount < minimum {
		return ErrBetBelowMinimum
	}
	if amount > p.Chips {
		return ErrBetExceedsChips
	}
	return nil
}

// CanSplit checks the split preconditions in order: exactly two cards, of
// matching rank, with the owner able to cover a second wager.
func (h *Hand) CanSplit() error {
	if len(h.Cards) != 2 {
		return ErrCardCountInvalid
	}
	if h.Cards[0].Rank != h.Cards[1].Rank {
		return ErrRankMismatch
	}
	if h.Owner.Chips < h.Wager {
		return ErrInsufficientChips
	}
	return nil
}

// Validate reports whether action is currently allowed on the hand.
func (h *Hand) Validate(action Action) error {
	switch action {
	case Stick, Twist:
		return nil
	case Split:
		return h.CanSplit()
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, action)
	}
}

// Stick ends action on the hand.
func (h *Hand) Stick() error {
	if h.IsResolved() {
		return ErrHandResolved
	}
	h.stuck = true
	return nil
}

// Twist deals one card from d onto the hand.
func (h *Hand) Twist(d *deck.Deck) (deck.Card, error) {
	if h.IsResolved() {
		return deck.Card{}, ErrHandResolved
	}
	card, ok := d.Deal()
	if !ok {
		return deck.Card{}, ErrDeckExhausted
	}
	h.Cards = append(h.Cards, card)
	return card, nil
}

// Split divides a matching pair into two hands. The owner pays the new
// hand's wager, the second card moves to the new hand and each hand is
// completed with a fresh card from d, new hand first. The returned hand
// belongs immediately after h in the round's hand order.
func (h *Hand) Split(d *deck.Deck) (*Hand, error) {
	if h.IsResolved() {
		return nil, ErrHandResolved
	}
	if err := h.CanSplit(); err != nil {
		return nil, err
	}
	if d.CardsRemaining() < 2 {
		return nil, ErrDeckExhausted
	}

	forNew, _ := d.Deal()
	forCurrent, _ := d.Deal()

	h.Owner.Chips -= h.Wager
	sibling := &Hand{
		Owner: h.Owner,
		Cards: []deck.Card{h.Cards[1], forNew},
		Wager: h.Wager,
	}
	h.Cards = []deck.Card{h.Cards[0], forCurrent}
	return sibling, nil
}

// View returns a read-only snapshot of the hand.
func (h *Hand) View() HandView {
	cards := make([]deck.Card, len(h.Cards))
	copy(cards, h.Cards)
	return HandView{
		Owner: h.Owner.Name,
		Kind:  h.Owner.Kind,
		Chips: h.Owner.Chips,
		Cards: cards,
		Wager: h.Wager,
		Score: h.Score(),
	}
}

// HandView is an immutable snapshot of a hand for agents and renderers.
type HandView struct {
	Owner string
	Kind  PlayerKind
	Chips int
	Cards []deck.Card
	Wager int
	Score Score
}
