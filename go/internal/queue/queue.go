// Package queue holds the FIFO backlog of players awaiting auction.
package queue

import (
	"github.com/mcdev12/liveauction/go/internal/models"
)

// Queue is an ordered backlog of submitted players. FIFO order is the sole
// ordering guarantee. The queue is not internally locked; the auction engine
// serializes all access.
type Queue struct {
	entries []models.QueueEntry
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends an entry and returns its 1-based position in the backlog.
func (q *Queue) Enqueue(entry models.QueueEntry) int {
	q.entries = append(q.entries, entry)
	return len(q.entries)
}

// DequeueFront removes and returns the oldest entry.
func (q *Queue) DequeueFront() (models.QueueEntry, bool) {
	if len(q.entries) == 0 {
		return models.QueueEntry{}, false
	}
	entry := q.entries[0]
	q.entries = q.entries[1:]
	return entry, true
}

// PeekFront returns the oldest entry without removing it.
func (q *Queue) PeekFront() (models.QueueEntry, bool) {
	if len(q.entries) == 0 {
		return models.QueueEntry{}, false
	}
	return q.entries[0], true
}

// PreviewFirstN returns a copy of up to n entries from the front.
func (q *Queue) PreviewFirstN(n int) []models.QueueEntry {
	if n > len(q.entries) {
		n = len(q.entries)
	}
	out := make([]models.QueueEntry, n)
	copy(out, q.entries[:n])
	return out
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Reset drops every queued entry.
func (q *Queue) Reset() {
	q.entries = nil
}
