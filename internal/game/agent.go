package game

import (
	"context"

	"github.com/lox/twentyone/internal/deck"
)

// BetRequest asks an agent how much to wager on a freshly dealt hand.
type BetRequest struct {
	Hand    HandView
	Upcard  deck.Card
	Minimum int
	Maximum int

	// Validate reports why an amount would be refused.
	Validate func(amount int) error
}

// ActionRequest asks an agent what to do next with a hand.
type ActionRequest struct {
	Hand   HandView
	Upcard deck.Card

	// Validate reports why an action would be refused in the hand's
	// current state, e.g. ErrRankMismatch for an unmatched split.
	Validate func(Action) error
}

// Agent represents anything (human or automated) that makes decisions for a
// player. Agents see read-only snapshots; the engine applies the decisions.
type Agent interface {
	// Bet returns the wager for a hand.
	Bet(ctx context.Context, req BetRequest) (int, error)

	// Act returns the next action for a hand.
	Act(ctx context.Context, req ActionRequest) (Action, error)
}
