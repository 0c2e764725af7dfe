package game

import (
	"fmt"
	rand "math/rand/v2"
)

// PlayerKind distinguishes people at the keyboard from automated players.
type PlayerKind int

const (
	Human PlayerKind = iota
	Automated
)

func (k PlayerKind) String() string {
	switch k {
	case Human:
		return "human"
	case Automated:
		return "automated"
	default:
		return "unknown"
	}
}

// Player is a seat's identity and chip balance. Players outlive rounds;
// hands only ever refer to them.
type Player struct {
	Name  string
	Kind  PlayerKind
	Chips int
}

// NewPlayer creates a new player
func NewPlayer(name string, kind PlayerKind, chips int) *Player {
	return &Player{Name: name, Kind: kind, Chips: chips}
}

// IsBroke returns true once the player has no chips left to bet.
func (p *Player) IsBroke() bool {
	return p.Chips <= 0
}

// String returns e.g. "bob (chips: 40)".
func (p *Player) String() string {
	return fmt.Sprintf("%s (chips: %d)", p.Name, p.Chips)
}

// DefaultStartingChips is each player's stake when a session begins.
const DefaultStartingChips = 50

// BotNames are the names automated players are drawn from.
var BotNames = []string{
	"Smenge",
	"Boddit",
	"Ralphus",
	"Dilpo",
	"Blorphus",
	"Smarticus",
	"Klumph",
}

// NewPlayers seats the human players in the given order followed by botCount
// automated players named by sampling botNames without replacement. Repeated
// human names get a " #n" suffix so every player name is unique.
func NewPlayers(humanNames []string, botCount int, botNames []string, chips int, rng *rand.Rand) ([]*Player, error) {
	if botCount < 0 || botCount > len(botNames) {
		return nil, fmt.Errorf("bot count %d out of range 0-%d", botCount, len(botNames))
	}
	if len(humanNames)+botCount == 0 {
		return nil, ErrNoPlayers
	}

	players := make([]*Player, 0, len(humanNames)+botCount)
	seen := make(map[string]int, len(humanNames)+botCount)

	for _, name := range humanNames {
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s #%d", name, n)
		}
		players = append(players, NewPlayer(name, Human, chips))
	}

	for _, i := range rng.Perm(len(botNames))[:botCount] {
		name := botNames[i]
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s #%d", name, n)
		}
		players = append(players, NewPlayer(name, Automated, chips))
	}

	return players, nil
}
