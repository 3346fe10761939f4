package main

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/liveauction/go/internal/engine"
	"github.com/mcdev12/liveauction/go/internal/gateway"
	"github.com/mcdev12/liveauction/go/internal/ledger"
	"github.com/mcdev12/liveauction/go/internal/queue"
)

type Services struct {
	Engine      *engine.Engine
	Scheduler   *engine.Scheduler
	Broadcaster *engine.Broadcaster
	Manager     *gateway.Manager
	API         *gateway.API
}

func setupServices(cfg *Config) *Services {
	// Wire up the ownership chain: ledger and queue feed the engine, which
	// feeds the scheduler, broadcaster and gateway. One engine instance owns
	// all mutable state.
	clock := clockwork.NewRealClock()

	teamLedger := ledger.New(cfg.Teams, cfg.Auction.InitialTokens)
	playerQueue := queue.New()

	eng := engine.New(engine.Config{
		BidWindow: time.Duration(cfg.Auction.BidWindowSec) * time.Second,
		BasePrice: engine.BasePriceConfig{
			Enabled: cfg.Auction.BasePrice.Enabled,
			Min:     cfg.Auction.BasePrice.Min,
			Max:     cfg.Auction.BasePrice.Max,
			Default: cfg.Auction.BasePrice.Default,
		},
	}, teamLedger, playerQueue, clock)

	handler := gateway.NewHandler(eng, cfg.Auth.AdminPass)
	manager := gateway.NewManager(gateway.DefaultConnectionConfig(), handler)

	broadcaster := engine.NewBroadcaster(
		eng,
		clock,
		time.Duration(cfg.Auction.UpdateIntervalMs)*time.Millisecond,
		manager.BroadcastState,
	)
	eng.SetNotifier(broadcaster.Notify)

	scheduler := engine.NewScheduler(eng, clock, time.Duration(cfg.Auction.TickMs)*time.Millisecond)

	return &Services{
		Engine:      eng,
		Scheduler:   scheduler,
		Broadcaster: broadcaster,
		Manager:     manager,
		API:         gateway.NewAPI(eng),
	}
}
