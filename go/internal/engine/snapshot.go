package engine

import (
	"math"
	"time"

	"github.com/mcdev12/liveauction/go/internal/models"
)

// Snapshot is the sanitized public projection of core state pushed to every
// connected session. It never carries secrets and shares no memory with the
// live state.
type Snapshot struct {
	Auction AuctionView `json:"auction"`
	Teams   []TeamView  `json:"teams"`
	Queue   QueueView   `json:"queue"`
}

// AuctionView is the public slice of the auction singleton.
type AuctionView struct {
	Phase            models.Phase              `json:"phase"`
	CurrentPlayer    *string                   `json:"currentPlayer"`
	CurrentBasePrice *int                      `json:"currentBasePrice,omitempty"`
	CurrentBid       *models.Bid               `json:"currentBid"`
	History          []models.SettlementRecord `json:"history"`
	DeadlineAt       *time.Time                `json:"deadlineAt"`
	CountdownSeconds int                       `json:"countdownSeconds"`
}

// TeamView is a team's public fields.
type TeamView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Tokens    int               `json:"tokens"`
	Purchases []models.Purchase `json:"purchases"`
}

// QueueView summarizes the pending backlog.
type QueueView struct {
	Count   int                 `json:"count"`
	UpNext  *string             `json:"upNext"`
	Pending []models.QueueEntry `json:"pending"`
}

// Snapshot computes the current public state under the writer lock. Callers
// fan the result out after the lock is released, so a slow session can never
// stall a mutation.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	now := e.clock.Now()

	auction := AuctionView{
		Phase:   e.phase,
		History: append([]models.SettlementRecord(nil), e.history...),
	}
	if e.currentPlayer != "" {
		player := e.currentPlayer
		auction.CurrentPlayer = &player
	}
	if e.currentBasePrice != nil {
		price := *e.currentBasePrice
		auction.CurrentBasePrice = &price
	}
	if e.currentBid != nil {
		bid := *e.currentBid
		auction.CurrentBid = &bid
	}
	if e.deadlineAt != nil {
		deadline := *e.deadlineAt
		auction.DeadlineAt = &deadline
		if e.phase == models.PhaseRunning {
			secs := int(math.Ceil(deadline.Sub(now).Seconds()))
			if secs < 0 {
				secs = 0
			}
			auction.CountdownSeconds = secs
		}
	}

	teams := make([]TeamView, 0, len(e.ledger.Teams()))
	for _, t := range e.ledger.Teams() {
		teams = append(teams, TeamView{
			ID:        t.ID,
			Name:      t.Name,
			Tokens:    t.Tokens,
			Purchases: append([]models.Purchase(nil), t.Purchases...),
		})
	}

	view := QueueView{
		Count:   e.queue.Len(),
		Pending: e.queue.PreviewFirstN(e.cfg.QueuePreview),
	}
	if front, ok := e.queue.PeekFront(); ok {
		name := front.Name
		view.UpNext = &name
	}

	return Snapshot{Auction: auction, Teams: teams, Queue: view}
}
