package queue

import (
	"testing"
	"time"

	"github.com/mcdev12/liveauction/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string) models.QueueEntry {
	return models.QueueEntry{Name: name, SubmittedAt: time.Now()}
}

func TestFIFOOrder(t *testing.T) {
	q := New()

	assert.Equal(t, 1, q.Enqueue(entry("a")))
	assert.Equal(t, 2, q.Enqueue(entry("b")))
	assert.Equal(t, 3, q.Enqueue(entry("c")))

	first, ok := q.DequeueFront()
	require.True(t, ok)
	assert.Equal(t, "a", first.Name)

	second, ok := q.DequeueFront()
	require.True(t, ok)
	assert.Equal(t, "b", second.Name)

	assert.Equal(t, 1, q.Len())
}

func TestDequeueEmpty(t *testing.T) {
	q := New()

	_, ok := q.DequeueFront()
	assert.False(t, ok)
	_, ok = q.PeekFront()
	assert.False(t, ok)
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := New()
	q.Enqueue(entry("a"))

	front, ok := q.PeekFront()
	require.True(t, ok)
	assert.Equal(t, "a", front.Name)
	assert.Equal(t, 1, q.Len())
}

func TestPreviewFirstN(t *testing.T) {
	q := New()
	q.Enqueue(entry("a"))
	q.Enqueue(entry("b"))
	q.Enqueue(entry("c"))

	preview := q.PreviewFirstN(2)
	require.Len(t, preview, 2)
	assert.Equal(t, "a", preview[0].Name)
	assert.Equal(t, "b", preview[1].Name)

	// Asking for more than queued returns everything.
	assert.Len(t, q.PreviewFirstN(10), 3)
	// Preview never drains the queue.
	assert.Equal(t, 3, q.Len())
}

func TestReset(t *testing.T) {
	q := New()
	q.Enqueue(entry("a"))
	q.Reset()
	assert.Equal(t, 0, q.Len())
}
