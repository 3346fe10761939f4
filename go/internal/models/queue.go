package models

import (
	"time"
)

// QueueEntry is a player waiting to go under the hammer. Entries are
// immutable once enqueued; the queue is strictly FIFO.
type QueueEntry struct {
	Name        string    `json:"name"`
	BasePrice   *int      `json:"basePrice,omitempty"`
	SubmittedAt time.Time `json:"ts"`
}
