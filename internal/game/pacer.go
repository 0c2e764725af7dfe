package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// Pacing holds the cosmetic delays that make automated play readable.
type Pacing struct {
	Think         time.Duration // automated player deciding
	Reveal        time.Duration // dealer turning over the hole card
	DealerDraw    time.Duration // after each dealer card
	Settle        time.Duration // before payouts are announced
	BetweenRounds time.Duration
}

// DefaultPacing matches the feel of a real table.
func DefaultPacing() Pacing {
	return Pacing{
		Think:         2 * time.Second,
		Reveal:        3 * time.Second,
		DealerDraw:    time.Second,
		Settle:        time.Second,
		BetweenRounds: 5 * time.Second,
	}
}

// Pacer sleeps on the round's own thread of control. A nil *Pacer never
// waits, which is what tests and simulations want.
type Pacer struct {
	clock  quartz.Clock
	pacing Pacing
}

// NewPacer creates a pacer using clock for its timers.
func NewPacer(clock quartz.Clock, pacing Pacing) *Pacer {
	return &Pacer{clock: clock, pacing: pacing}
}

// Pacing returns the configured delays.
func (p *Pacer) Pacing() Pacing {
	if p == nil {
		return Pacing{}
	}
	return p.pacing
}

// Pause blocks for d or until ctx is done.
func (p *Pacer) Pause(ctx context.Context, d time.Duration, tags ...string) error {
	if p == nil || d <= 0 {
		return ctx.Err()
	}

	done := make(chan struct{})
	timer := p.clock.AfterFunc(d, func() {
		close(done)
	}, append([]string{"pacer"}, tags...)...)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
