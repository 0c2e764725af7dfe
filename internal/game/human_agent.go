package game

import (
	"context"
	"fmt"
)

// Prompter is the validated-input collaborator a human plays through. It
// re-asks until the answer passes verify and returns ErrEndOfInput when the
// input closes.
type Prompter interface {
	Int(message string, verify func(int) error) (int, error)
	Choice(message string, choices []string, verify func(string) error) (string, error)
}

// HumanAgent represents a person at the keyboard.
type HumanAgent struct {
	name   string
	prompt Prompter
}

// NewHumanAgent creates a new human agent for the named player
func NewHumanAgent(name string, prompt Prompter) *HumanAgent {
	return &HumanAgent{name: name, prompt: prompt}
}

// Bet asks for a wager until the engine's bet rules accept it.
func (h *HumanAgent) Bet(ctx context.Context, req BetRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return h.prompt.Int(fmt.Sprintf("%s, place your bet:", h.name), req.Validate)
}

// Act asks for split, stick or twist until the engine accepts it.
func (h *HumanAgent) Act(ctx context.Context, req ActionRequest) (Action, error) {
	if err := ctx.Err(); err != nil {
		return Stick, err
	}

	verify := func(name string) error {
		action, err := ParseAction(name)
		if err != nil {
			return err
		}
		return req.Validate(action)
	}

	name, err := h.prompt.Choice(fmt.Sprintf("%s, what would you like to do?", h.name), ActionNames(), verify)
	if err != nil {
		return Stick, err
	}
	return ParseAction(name)
}
