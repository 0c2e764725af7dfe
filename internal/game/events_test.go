package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDeliversInOrderToEverySubscriber(t *testing.T) {
	bus := NewEventBus()

	var first, second []EventType
	bus.Subscribe(EventSubscriberFunc(func(e GameEvent) { first = append(first, e.EventType()) }))
	bus.Subscribe(EventSubscriberFunc(func(e GameEvent) { second = append(second, e.EventType()) }))

	bus.Publish(RoundStartEvent{stamp: now()})
	bus.Publish(PlayerBrokeEvent{stamp: now(), Player: "Klumph"})

	want := []EventType{EventTypeRoundStart, EventTypePlayerBroke}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}

func TestEventsAreStamped(t *testing.T) {
	e := DealerDrawEvent{stamp: now()}
	assert.False(t, e.Timestamp().IsZero())
	assert.Equal(t, "dealer_draw", e.EventType().String())
}
