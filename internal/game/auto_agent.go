package game

import (
	"context"
)

// AutoAgent is the house bot: it always bets the minimum and always sticks,
// after a short cosmetic pause so humans can follow along.
type AutoAgent struct {
	pacer *Pacer
}

// NewAutoAgent creates an automated agent. A nil pacer makes it instant.
func NewAutoAgent(pacer *Pacer) *AutoAgent {
	return &AutoAgent{pacer: pacer}
}

// Bet returns the table minimum.
func (a *AutoAgent) Bet(ctx context.Context, req BetRequest) (int, error) {
	return req.Minimum, ctx.Err()
}

// Act sticks.
func (a *AutoAgent) Act(ctx context.Context, req ActionRequest) (Action, error) {
	if err := a.pacer.Pause(ctx, a.pacer.Pacing().Think, "think"); err != nil {
		return Stick, err
	}
	return Stick, nil
}
