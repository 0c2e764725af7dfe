package game

import (
	"errors"

	"github.com/lox/twentyone/internal/prompt"
)

// Errors a player can cause. They are reported at the prompt and the same
// decision is asked for again.
var (
	ErrBetBelowMinimum   = errors.New("your bet is less than the minimum")
	ErrBetExceedsChips   = errors.New("you don't have enough chips")
	ErrCardCountInvalid  = errors.New("you can't split after getting extra cards")
	ErrRankMismatch      = errors.New("your cards must match for you to split")
	ErrInsufficientChips = errors.New("you do not have enough chips to split")
	ErrUnknownAction     = errors.New("unknown action")
)

// Errors that mean the round's own bookkeeping is broken. A round that hits
// one of these is abandoned.
var (
	ErrDeckExhausted     = errors.New("game: deck exhausted")
	ErrHandResolved      = errors.New("game: hand already resolved")
	ErrChipsNotConserved = errors.New("game: chips not conserved")
	ErrNoPlayers         = errors.New("game: no players")
	ErrPlayerBroke       = errors.New("game: player cannot cover the minimum bet")
)

// ErrEndOfInput is returned when a human walks away from the prompt.
var ErrEndOfInput = prompt.ErrEndOfInput
