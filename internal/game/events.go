package game

import (
	"time"

	"github.com/lox/twentyone/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStart       EventType = "round_start"
	EventTypeBetPlaced        EventType = "bet_placed"
	EventTypeCardsDealt       EventType = "cards_dealt"
	EventTypeDecisionRequired EventType = "decision_required"
	EventTypePlayerAction     EventType = "player_action"
	EventTypeHandResolved     EventType = "hand_resolved"
	EventTypeDealerBlackjack  EventType = "dealer_blackjack"
	EventTypeDealerReveal     EventType = "dealer_reveal"
	EventTypeDealerDraw       EventType = "dealer_draw"
	EventTypeDealerStand      EventType = "dealer_stand"
	EventTypeRoundEnd         EventType = "round_end"
	EventTypePlayerBroke      EventType = "player_broke"
	EventTypeSessionEnd       EventType = "session_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens at the table worth narrating.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamp struct{ at time.Time }

func (s stamp) Timestamp() time.Time { return s.at }

func now() stamp { return stamp{at: time.Now()} }

// RoundStartEvent is published once every hand and the dealer hold one card.
type RoundStartEvent struct {
	stamp
	RoundID string
	Number  int
	Hands   []HandView
	Upcard  deck.Card
}

func (RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// BetPlacedEvent is published after a wager moves onto a hand.
type BetPlacedEvent struct {
	stamp
	RoundID string
	Index   int
	Hand    HandView
	Amount  int
}

func (BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// CardsDealtEvent is published after the second card.
type CardsDealtEvent struct {
	stamp
	RoundID string
	Hands   []HandView
	Upcard  deck.Card
}

func (CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }

// Decision names what an agent is being asked for.
type Decision string

const (
	DecisionBet    Decision = "bet"
	DecisionAction Decision = "action"
)

// DecisionRequiredEvent is published right before an agent is asked to
// decide, so a human can see the hand they are deciding on.
type DecisionRequiredEvent struct {
	stamp
	RoundID  string
	Index    int
	Decision Decision
	Hand     HandView
}

func (DecisionRequiredEvent) EventType() EventType { return EventTypeDecisionRequired }

// PlayerActionEvent is published after an action is applied. Card is set for
// a twist and Sibling for a split.
type PlayerActionEvent struct {
	stamp
	RoundID string
	Index   int
	Action  Action
	Hand    HandView
	Card    deck.Card
	Sibling *HandView
}

func (PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// Resolution records why a hand stopped taking actions.
type Resolution string

const (
	ResolvedBlackjack Resolution = "blackjack"
	ResolvedTwentyone Resolution = "21"
	ResolvedBust      Resolution = "bust"
	ResolvedStick     Resolution = "stick"
)

// HandResolvedEvent is published when a hand stops taking actions.
type HandResolvedEvent struct {
	stamp
	RoundID    string
	Index      int
	Hand       HandView
	Resolution Resolution
}

func (HandResolvedEvent) EventType() EventType { return EventTypeHandResolved }

// DealerBlackjackEvent is published when the dealer's first two cards end
// the round.
type DealerBlackjackEvent struct {
	stamp
	RoundID string
	Cards   []deck.Card
}

func (DealerBlackjackEvent) EventType() EventType { return EventTypeDealerBlackjack }

// DealerRevealEvent is published when the hole card is turned over.
type DealerRevealEvent struct {
	stamp
	RoundID string
	Cards   []deck.Card
	Score   Score
}

func (DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }

// DealerDrawEvent is published for every card the dealer draws.
type DealerDrawEvent struct {
	stamp
	RoundID string
	Card    deck.Card
	Cards   []deck.Card
	Score   Score
}

func (DealerDrawEvent) EventType() EventType { return EventTypeDealerDraw }

// DealerStandEvent is published when the dealer stops drawing.
type DealerStandEvent struct {
	stamp
	RoundID string
	Cards   []deck.Card
	Score   Score
}

func (DealerStandEvent) EventType() EventType { return EventTypeDealerStand }

// RoundEndEvent carries the settled result of a round.
type RoundEndEvent struct {
	stamp
	Result *RoundResult
}

func (RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// PlayerBrokeEvent is published when a player leaves the table with no chips.
type PlayerBrokeEvent struct {
	stamp
	Player string
	Rounds int
}

func (PlayerBrokeEvent) EventType() EventType { return EventTypePlayerBroke }

// SessionEndEvent is published when a session stops.
type SessionEndEvent struct {
	stamp
	Rounds    int
	Remaining []string
}

func (SessionEndEvent) EventType() EventType { return EventTypeSessionEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Events are
// delivered synchronously, in order, on the publisher's goroutine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
