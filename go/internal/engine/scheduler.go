package engine

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Scheduler detects bidding-window expiry with a fixed short-period poll.
// Each tick goes through the engine's writer lock like any other mutation,
// so an expiry racing a last-moment bid resolves to whichever is sequenced
// first. Exactly one Scheduler runs per process; rearming a deadline never
// spawns another ticker.
type Scheduler struct {
	engine   *Engine
	clock    clockwork.Clock
	interval time.Duration
}

// NewScheduler creates the expiry poller.
func NewScheduler(e *Engine, clock clockwork.Clock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Scheduler{engine: e, clock: clock, interval: interval}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("deadline scheduler started")
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("deadline scheduler shutting down")
			return
		case <-ticker.Chan():
			s.engine.ExpireDue()
		}
	}
}
