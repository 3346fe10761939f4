package models

import (
	"time"
)

// Purchase is one player a team won at settlement. Purchases are append-only
// and most-recent-first.
type Purchase struct {
	Player    string    `json:"player"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"ts"`
}
