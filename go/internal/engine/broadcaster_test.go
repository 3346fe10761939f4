package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awaitSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a published snapshot")
		return Snapshot{}
	}
}

func assertNoSnapshot(t *testing.T, ch <-chan Snapshot) {
	t.Helper()
	time.Sleep(20 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("unexpected snapshot published")
	default:
	}
}

func TestBroadcasterCoalescesBursts(t *testing.T) {
	e, clock := newTestEngine(t)
	published := make(chan Snapshot, 16)

	b := NewBroadcaster(e, clock, time.Second, func(snap Snapshot) {
		published <- snap
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	// First notification publishes immediately: nothing was sent before.
	b.Notify()
	awaitSnapshot(t, published)

	// A burst inside the window collapses into one pending publication.
	b.Notify()
	b.Notify()
	b.Notify()
	clock.BlockUntil(1)
	assertNoSnapshot(t, published)

	clock.Advance(time.Second)
	awaitSnapshot(t, published)
	assertNoSnapshot(t, published)
}

func TestBroadcasterPublishesFreshState(t *testing.T) {
	e, clock := newTestEngine(t)
	published := make(chan Snapshot, 16)

	b := NewBroadcaster(e, clock, time.Second, func(snap Snapshot) {
		published <- snap
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	b.Notify()
	awaitSnapshot(t, published)

	_, err := e.EnqueuePlayer("Messi", nil)
	require.NoError(t, err)

	// The engine notifier is not wired in this test, so notify by hand
	// and let the window elapse.
	b.Notify()
	clock.BlockUntil(1)
	clock.Advance(time.Second)

	snap := awaitSnapshot(t, published)
	assert.Equal(t, 1, snap.Queue.Count)
	require.NotNil(t, snap.Queue.UpNext)
	assert.Equal(t, "Messi", *snap.Queue.UpNext)
}

func TestBroadcasterStopsOnContextCancel(t *testing.T) {
	e, clock := newTestEngine(t)
	b := NewBroadcaster(e, clock, time.Second, func(Snapshot) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcaster did not stop")
	}
}
