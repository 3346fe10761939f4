// Package engine is the authority for all auction state: phase, current
// player, leading bid, bidding deadline and settlement history. Every
// mutation, whether session-triggered or timer-triggered, runs behind one
// writer lock, so bid arbitration and deadline expiry are race-free by
// construction.
package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/liveauction/go/internal/ledger"
	"github.com/mcdev12/liveauction/go/internal/models"
	"github.com/mcdev12/liveauction/go/internal/queue"
	"github.com/rs/zerolog/log"
)

// BasePriceConfig controls the optional minimum-first-bid floor.
type BasePriceConfig struct {
	Enabled bool
	Min     int
	Max     int
	Default int
}

// Config holds the engine's tunables.
type Config struct {
	// BidWindow is the bidding countdown. Every accepted bid resets it to a
	// full fresh window (anti-snipe).
	BidWindow time.Duration
	// BasePrice configures the admissible floor for submitted players.
	BasePrice BasePriceConfig
	// QueuePreview bounds the pending-players preview in snapshots.
	QueuePreview int
}

// Engine is the auction state machine. One instance exists per process,
// created at startup by the entry point and handed to the scheduler,
// broadcaster and gateway.
type Engine struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	cfg    Config
	ledger *ledger.Ledger
	queue  *queue.Queue

	phase            models.Phase
	currentPlayer    string
	currentBasePrice *int
	currentBid       *models.Bid
	deadlineAt       *time.Time
	history          []models.SettlementRecord

	notify func()
}

// New creates the engine. In production pass clockwork.NewRealClock(); tests
// drive deadlines with a FakeClock.
func New(cfg Config, l *ledger.Ledger, q *queue.Queue, clock clockwork.Clock) *Engine {
	if cfg.QueuePreview <= 0 {
		cfg.QueuePreview = 100
	}
	return &Engine{
		clock:  clock,
		cfg:    cfg,
		ledger: l,
		queue:  q,
		phase:  models.PhaseIdle,
		notify: func() {},
	}
}

// SetNotifier registers the callback invoked after every accepted mutation.
// The callback runs outside the writer lock and must not block.
func (e *Engine) SetNotifier(fn func()) {
	e.notify = fn
}

// AuthenticateTeam validates a team's credentials.
func (e *Engine) AuthenticateTeam(teamID, pass string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.ledger.Authenticate(teamID, pass)
	return err
}

// RenameTeam updates a team's own display name.
func (e *Engine) RenameTeam(teamID, name string) error {
	e.mu.Lock()
	err := e.ledger.Rename(teamID, name)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.notify()
	return nil
}

// EnqueuePlayer appends a player to the backlog and returns its 1-based
// position. When base prices are enabled an absent price gets the configured
// default floor; when disabled, submissions may not carry one.
func (e *Engine) EnqueuePlayer(name string, basePrice *int) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyPlayerName
	}
	if e.cfg.BasePrice.Enabled {
		if basePrice == nil {
			def := e.cfg.BasePrice.Default
			basePrice = &def
		} else if *basePrice < e.cfg.BasePrice.Min || *basePrice > e.cfg.BasePrice.Max {
			return 0, ErrBasePriceOutOfRange
		}
	} else if basePrice != nil {
		return 0, ErrBasePriceDisabled
	}

	e.mu.Lock()
	pos := e.queue.Enqueue(models.QueueEntry{
		Name:        name,
		BasePrice:   basePrice,
		SubmittedAt: e.clock.Now(),
	})
	e.mu.Unlock()

	log.Info().Str("player", name).Int("position", pos).Msg("player queued")
	e.notify()
	return pos, nil
}

// Start opens bidding on the current player, pulling the next queued player
// first if none is loaded. Calling Start while already running rearms a full
// bidding window.
func (e *Engine) Start() error {
	e.mu.Lock()
	err := e.startLocked()
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.notify()
	return nil
}

// StartNext advances to the next queued player and opens bidding on it in
// one step.
func (e *Engine) StartNext() error {
	e.mu.Lock()
	e.loadNextLocked()
	err := e.startLocked()
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.notify()
	return nil
}

// Pause suspends bidding. The current player and leading bid are retained;
// the countdown is discarded, so a later Start grants a full fresh window.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.phase = models.PhasePaused
	e.deadlineAt = nil
	e.mu.Unlock()
	e.notify()
}

// LoadNext pulls the next queued player without opening bidding. With an
// empty queue it clears the current player.
func (e *Engine) LoadNext() {
	e.mu.Lock()
	e.loadNextLocked()
	e.phase = models.PhaseIdle
	e.deadlineAt = nil
	e.mu.Unlock()
	e.notify()
}

// SetPlayer loads a player by name directly, bypassing the queue. An empty
// name clears the current player.
func (e *Engine) SetPlayer(name string) {
	name = strings.TrimSpace(name)
	e.mu.Lock()
	e.currentPlayer = name
	e.currentBid = nil
	e.currentBasePrice = nil
	if name != "" && e.cfg.BasePrice.Enabled {
		def := e.cfg.BasePrice.Default
		e.currentBasePrice = &def
	}
	e.phase = models.PhaseIdle
	e.deadlineAt = nil
	e.mu.Unlock()
	e.notify()
}

// SubmitBid applies a team's bid against the current player. An accepted bid
// becomes the leading bid and resets the countdown to a full window.
func (e *Engine) SubmitBid(teamID string, amount int) error {
	e.mu.Lock()
	err := e.submitBidLocked(teamID, amount)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.notify()
	return nil
}

// CloseAndSell settles the current player to the leading bidder. Without a
// current player and bid it is a no-op.
func (e *Engine) CloseAndSell() error {
	e.mu.Lock()
	settled, err := e.closeAndSellLocked()
	e.mu.Unlock()
	if err != nil {
		return err
	}
	if settled {
		e.notify()
	}
	return nil
}

// MarkUnsold settles the current player as unsold. With a leading bid
// present, or no player loaded, it is a no-op.
func (e *Engine) MarkUnsold() {
	e.mu.Lock()
	settled := e.markUnsoldLocked()
	e.mu.Unlock()
	if settled {
		e.notify()
	}
}

// Reset restores the whole auction to its initial state: phase, current
// player, bid, history, queue and team balances. An explicit operator
// action.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.phase = models.PhaseIdle
	e.currentPlayer = ""
	e.currentBasePrice = nil
	e.currentBid = nil
	e.deadlineAt = nil
	e.history = nil
	e.queue.Reset()
	e.ledger.Reset()
	e.mu.Unlock()
	log.Info().Msg("auction reset")
	e.notify()
}

// ExpireDue settles the current player if the bidding window has lapsed:
// sold when a bid exists at the moment the check runs, unsold otherwise.
// Clearing the deadline on first detection makes repeated ticks after expiry
// no-ops. Returns whether a settlement happened.
func (e *Engine) ExpireDue() bool {
	e.mu.Lock()
	settled := false
	if e.phase == models.PhaseRunning && e.deadlineAt != nil && !e.clock.Now().Before(*e.deadlineAt) {
		player := e.currentPlayer
		if e.currentBid != nil {
			if _, err := e.closeAndSellLocked(); err != nil {
				log.Error().Err(err).Str("player", player).Msg("expiry settlement failed")
			}
		} else {
			e.markUnsoldLocked()
		}
		e.phase = models.PhaseIdle
		e.deadlineAt = nil
		settled = true
		log.Info().Str("player", player).Msg("bidding window expired")
	}
	e.mu.Unlock()
	if settled {
		e.notify()
	}
	return settled
}

func (e *Engine) startLocked() error {
	if e.currentPlayer == "" {
		e.loadNextLocked()
	}
	if e.currentPlayer == "" {
		return ErrNoPlayersQueued
	}
	e.phase = models.PhaseRunning
	e.armDeadlineLocked()
	return nil
}

func (e *Engine) loadNextLocked() {
	entry, ok := e.queue.DequeueFront()
	if !ok {
		e.currentPlayer = ""
		e.currentBasePrice = nil
		e.currentBid = nil
		return
	}
	e.currentPlayer = entry.Name
	e.currentBasePrice = entry.BasePrice
	e.currentBid = nil
}

func (e *Engine) armDeadlineLocked() {
	deadline := e.clock.Now().Add(e.cfg.BidWindow)
	e.deadlineAt = &deadline
}

func (e *Engine) submitBidLocked(teamID string, amount int) error {
	if amount <= 0 {
		return ErrInvalidBid
	}
	if e.phase != models.PhaseRunning {
		return ErrAuctionNotRunning
	}
	if e.currentPlayer == "" {
		return ErrNoCurrentPlayer
	}
	if e.currentBid == nil {
		if e.currentBasePrice != nil && amount < *e.currentBasePrice {
			return ErrBelowBasePrice
		}
	} else if amount <= e.currentBid.Amount {
		return ErrBidTooLow
	}
	balance, ok := e.ledger.Balance(teamID)
	if !ok {
		return ledger.ErrUnknownTeam
	}
	if balance < amount {
		return ledger.ErrInsufficientFunds
	}

	e.currentBid = &models.Bid{TeamID: teamID, Amount: amount}
	e.armDeadlineLocked()
	log.Info().
		Str("team_id", teamID).
		Str("player", e.currentPlayer).
		Int("amount", amount).
		Msg("bid accepted")
	return nil
}

func (e *Engine) closeAndSellLocked() (bool, error) {
	if e.currentPlayer == "" || e.currentBid == nil {
		return false, nil
	}
	player := e.currentPlayer
	bid := *e.currentBid
	ts := e.clock.Now()
	if err := e.ledger.Settle(bid.TeamID, player, bid.Amount, ts); err != nil {
		return false, err
	}
	teamID := bid.TeamID
	e.history = append([]models.SettlementRecord{{
		Player:    player,
		TeamID:    &teamID,
		Amount:    bid.Amount,
		Timestamp: ts,
	}}, e.history...)
	e.phase = models.PhaseIdle
	e.deadlineAt = nil
	e.loadNextLocked()
	log.Info().
		Str("player", player).
		Str("team_id", teamID).
		Int("amount", bid.Amount).
		Msg("player sold")
	return true, nil
}

func (e *Engine) markUnsoldLocked() bool {
	if e.currentPlayer == "" || e.currentBid != nil {
		return false
	}
	player := e.currentPlayer
	e.history = append([]models.SettlementRecord{{
		Player:    player,
		Amount:    0,
		Timestamp: e.clock.Now(),
		Unsold:    true,
	}}, e.history...)
	e.phase = models.PhaseIdle
	e.deadlineAt = nil
	e.loadNextLocked()
	log.Info().Str("player", player).Msg("player unsold")
	return true
}
