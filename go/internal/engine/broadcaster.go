package engine

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Broadcaster publishes fresh public snapshots to the transport layer.
//
// Policy: edge-triggered with a trailing coalescing window. Every accepted
// mutation calls Notify; publications are collapsed so that a burst of rapid
// mutations produces at most one outbound snapshot per interval. There is no
// unconditional heartbeat.
type Broadcaster struct {
	engine   *Engine
	clock    clockwork.Clock
	interval time.Duration
	notifyCh chan struct{}
	publish  func(Snapshot)
}

// NewBroadcaster creates the coordinator. publish receives each snapshot and
// must fan it out without blocking engine mutation (the snapshot is computed
// and handed over outside the engine's writer lock).
func NewBroadcaster(e *Engine, clock clockwork.Clock, interval time.Duration, publish func(Snapshot)) *Broadcaster {
	if interval <= 0 {
		interval = time.Second
	}
	return &Broadcaster{
		engine:   e,
		clock:    clock,
		interval: interval,
		notifyCh: make(chan struct{}, 1),
		publish:  publish,
	}
}

// Notify schedules a snapshot publication. Never blocks; a notification that
// arrives while one is already pending is absorbed by it.
func (b *Broadcaster) Notify() {
	select {
	case b.notifyCh <- struct{}{}:
	default:
	}
}

// Run processes notifications until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	log.Info().Dur("interval", b.interval).Msg("broadcaster started")
	var lastSent time.Time

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("broadcaster shutting down")
			return
		case <-b.notifyCh:
			if since := b.clock.Since(lastSent); since < b.interval {
				// Too soon after the previous publication: hold until the
				// window closes so bursts collapse into one message.
				timer := b.clock.NewTimer(b.interval - since)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.Chan():
				}
			}
			// Drain before reading state: anything notified from here on is
			// not covered by this snapshot and will trigger another send.
			select {
			case <-b.notifyCh:
			default:
			}
			b.publish(b.engine.Snapshot())
			lastSent = b.clock.Now()
		}
	}
}
