package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerWaitsForClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	pacer := NewPacer(mockClock, DefaultPacing())

	done := make(chan error, 1)
	go func() {
		done <- pacer.Pause(ctx, 2*time.Second, "think")
	}()

	require.Eventually(t, func() bool {
		_, ok := mockClock.Peek()
		return ok
	}, time.Second, time.Millisecond)

	select {
	case <-done:
		t.Fatal("pause returned before the clock advanced")
	default:
	}

	mockClock.Advance(2 * time.Second).MustWait(ctx)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("pause never returned")
	}
}

func TestPacerHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pacer := NewPacer(quartz.NewMock(t), DefaultPacing())

	done := make(chan error, 1)
	go func() {
		done <- pacer.Pause(ctx, time.Hour)
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("pause ignored cancellation")
	}
}

func TestNilPacerDoesNotWait(t *testing.T) {
	var pacer *Pacer
	assert.NoError(t, pacer.Pause(context.Background(), time.Hour))
	assert.Equal(t, Pacing{}, pacer.Pacing())
}
