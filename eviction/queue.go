package eviction

import (
	"github.com/gammazero/deque"

	"github.com/krisalay/s3fifo-cache/types"
)

/*
Queue is a FIFO of resident cache entries. The head is the oldest-admitted
entry and the first eviction candidate; new entries join at the tail.

Beyond O(1) head-removal and tail-insertion, invalidation needs
arbitrary-key removal, which breaks strict FIFO semantics. That removal is
a linear scan: the queues are small by design, and invalidation is rare
next to admission and eviction, so a key→position index would cost more
bookkeeping than it saves.
*/
type Queue struct {
	q *deque.Deque[*types.CacheEntry]
}

// NewQueue returns an empty entry queue.
func NewQueue() *Queue {
	return &Queue{q: deque.New[*types.CacheEntry]()}
}

// Push appends an entry at the tail (most-recently admitted end).
func (q *Queue) Push(ent *types.CacheEntry) {
	q.q.PushBack(ent)
}

// Pop removes and returns the head (oldest-admitted entry).
// Returns false if the queue is empty.
func (q *Queue) Pop() (*types.CacheEntry, bool) {
	if q.q.Len() == 0 {
		return nil, false
	}
	return q.q.PopFront(), true
}

// Remove deletes the entry with the given key, wherever it sits in the
// queue. Reports whether the key was present.
func (q *Queue) Remove(key string) bool {
	i := q.q.Index(func(ent *types.CacheEntry) bool {
		return ent.Key == key
	})
	if i < 0 {
		return false
	}
	q.q.Remove(i)
	return true
}

// Contains reports whether the key is in the queue. Linear; meant for
// tests and diagnostics, not the hot path (the store answers residency
// in O(1)).
func (q *Queue) Contains(key string) bool {
	return q.q.Index(func(ent *types.CacheEntry) bool {
		return ent.Key == key
	}) >= 0
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	return q.q.Len()
}

// Keys returns the queued keys, oldest first.
func (q *Queue) Keys() []string {
	keys := make([]string, 0, q.q.Len())
	for i := 0; i < q.q.Len(); i++ {
		keys = append(keys, q.q.At(i).Key)
	}
	return keys
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.q.Clear()
}
