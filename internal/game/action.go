package game

import (
	"fmt"
	"strings"
)

// Action is a decision a player takes for one hand.
type Action int

const (
	Stick Action = iota
	Split
	Twist
)

// Actions lists every action in prompt order.
var Actions = []Action{Split, Stick, Twist}

func (a Action) String() string {
	switch a {
	case Stick:
		return "stick"
	case Split:
		return "split"
	case Twist:
		return "twist"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction maps a case-insensitive action name to an Action.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions {
		if a.String() == name {
			return a, nil
		}
	}
	return Stick, fmt.Errorf("%w %q", ErrUnknownAction, s)
}

// ActionNames returns the names accepted by ParseAction.
func ActionNames() []string {
	names := make([]string, len(Actions))
	for i, a := range Actions {
		names[i] = a.String()
	}
	return names
}
