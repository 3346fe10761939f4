package models

import (
	"time"
)

// Phase defines whether bidding is currently accepted.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// Bid is the current leading bid on the player under the hammer.
type Bid struct {
	TeamID string `json:"teamId"`
	Amount int    `json:"amount"`
}

// SettlementRecord is one closed-out player, sold or unsold. Records are
// append-only and most-recent-first.
type SettlementRecord struct {
	Player    string    `json:"player"`
	TeamID    *string   `json:"teamId"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"ts"`
	Unsold    bool      `json:"unsold,omitempty"`
}
