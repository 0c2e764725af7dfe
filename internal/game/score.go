package game

import (
	"strconv"

	"github.com/lox/twentyone/internal/deck"
)

const (
	// Twentyone is the best total a hand can reach without busting.
	Twentyone = 21

	// DealerStandsOn is the total at which the dealer stops drawing.
	DealerStandsOn = 17

	softAceBonus = 10
)

// ScoreKind discriminates the three shapes a hand's score can take.
type ScoreKind uint8

const (
	Bust ScoreKind = iota
	Total
	Blackjack
)

func (k ScoreKind) String() string {
	return [...]string{"bust", "total", "blackjack"}[k]
}

// Score is the derived value of a set of cards: bust, a numeric total, or
// blackjack. Scores order as Bust < Total(n) < Blackjack, with totals
// compared numerically.
type Score struct {
	kind  ScoreKind
	total int
}

// BustScore returns the score of a hand over 21.
func BustScore() Score { return Score{kind: Bust} }

// TotalScore returns a plain numeric score.
func TotalScore(n int) Score { return Score{kind: Total, total: n} }

// BlackjackScore returns the score of a two-card 21.
func BlackjackScore() Score { return Score{kind: Blackjack} }

// ScoreCards computes the score of cards. An empty slice scores Total(0).
//
// At most one ace is promoted to 11, and only when the low total is 11 or
// less; a second promoted ace would always bust.
func ScoreCards(cards []deck.Card) Score {
	total := 0
	hasAce := false
	for _, card := range cards {
		if card.IsAce() {
			hasAce = true
		}
		total += card.Rank.Points()
	}

	if total > Twentyone {
		return BustScore()
	}
	if total <= Twentyone-softAceBonus && hasAce {
		total += softAceBonus
	}
	if len(cards) == 2 && total == Twentyone {
		return BlackjackScore()
	}
	return TotalScore(total)
}

// Kind returns the variant of the score.
func (s Score) Kind() ScoreKind { return s.kind }

// Total returns the numeric total and true when the score is a Total.
func (s Score) Total() (int, bool) {
	if s.kind != Total {
		return 0, false
	}
	return s.total, true
}

// IsBust reports whether the score is Bust.
func (s Score) IsBust() bool { return s.kind == Bust }

// IsBlackjack reports whether the score is Blackjack.
func (s Score) IsBlackjack() bool { return s.kind == Blackjack }

// IsTwentyone reports whether the score is exactly Total(21).
func (s Score) IsTwentyone() bool { return s.kind == Total && s.total == Twentyone }

// Compare returns -1, 0 or +1 as s is below, equal to or above other.
func (s Score) Compare(other Score) int {
	switch {
	case s.kind < other.kind:
		return -1
	case s.kind > other.kind:
		return 1
	case s.kind != Total || s.total == other.total:
		return 0
	case s.total < other.total:
		return -1
	default:
		return 1
	}
}

// Beats reports whether s is strictly better than other.
func (s Score) Beats(other Score) bool {
	return s.Compare(other) > 0
}

// AtLeast reports whether s is at or above the plain total n. Blackjack is
// above every total and Bust below every total.
func (s Score) AtLeast(n int) bool {
	return s.Compare(TotalScore(n)) >= 0
}

// String returns "bust", "blackjack" or the numeric total.
func (s Score) String() string {
	if s.kind == Total {
		return strconv.Itoa(s.total)
	}
	return s.kind.String()
}
