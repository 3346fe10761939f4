package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerSettlesOnExpiry(t *testing.T) {
	e, clock := newTestEngine(t)

	_, err := e.EnqueuePlayer("Messi", nil)
	require.NoError(t, err)
	require.NoError(t, e.Start())
	require.NoError(t, e.SubmitBid("TEAM1", 60))

	s := NewScheduler(e, clock, 250*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// Wait for the ticker before advancing past the deadline.
	clock.BlockUntil(1)
	clock.Advance(bidWindow)

	require.Eventually(t, func() bool {
		return len(e.Snapshot().Auction.History) == 1
	}, time.Second, 10*time.Millisecond, "expiry settlement never happened")

	snap := e.Snapshot()
	rec := snap.Auction.History[0]
	require.NotNil(t, rec.TeamID)
	assert.Equal(t, "TEAM1", *rec.TeamID)
	assert.Equal(t, 60, rec.Amount)

	// Further ticks after expiry never settle twice.
	clock.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, e.Snapshot().Auction.History, 1)
}

func TestSchedulerIgnoresPausedAuction(t *testing.T) {
	e, clock := newTestEngine(t)

	_, err := e.EnqueuePlayer("Messi", nil)
	require.NoError(t, err)
	require.NoError(t, e.Start())
	e.Pause()

	s := NewScheduler(e, clock, 250*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	clock.BlockUntil(1)
	clock.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, e.Snapshot().Auction.History)
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	e, clock := newTestEngine(t)
	s := NewScheduler(e, clock, 250*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	clock.BlockUntil(1)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
