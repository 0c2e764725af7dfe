// Package game implements the rules of a multiplayer blackjack table.
//
// The main type is Engine, which plays a single round: it deals a fresh
// deck, collects bets through each player's Agent, plays the hands in seat
// order (including split hands), plays the dealer and settles every wager.
// Session strings rounds together until every player is broke.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	players, _ := game.NewPlayers([]string{"Ann"}, 2, game.BotNames, 50, rng)
//	engine := game.NewEngine(rng, logger)
//	result, err := engine.PlayRound(ctx, players, agents)
//
// Players without an entry in the agents map are played by an AutoAgent,
// which bets the minimum and always sticks.
//
// # Deterministic Testing
//
// Every shuffle and every round ID comes from the *rand.Rand passed to
// NewEngine, so a fixed seed reproduces a whole session. For complete
// control, stack the deck:
//
//	engine := game.NewEngine(rng, nil, game.WithDeckFactory(func() *deck.Deck {
//	    return deck.New(deck.MustParseCards("As 9c 7d Kh 9d Kd")...)
//	}))
//
// # Observing Play
//
// The engine narrates through an EventBus. Display and statistics code
// subscribe to it; nothing in this package writes to the terminal.
package game
