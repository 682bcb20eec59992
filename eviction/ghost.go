package eviction

import "github.com/gammazero/deque"

/*
Ghost is the registry of keys recently evicted past the main queue. It
remembers keys only: the value was dropped when the entry was evicted.

Two structures are kept in exact correspondence:
  - a FIFO of keys, oldest evicted at the head
  - a membership set for O(1) "have we seen this key before?"

A key found here at insert time earned eviction once already, so it skips
the probationary small queue and re-enters straight into main. That fast
path is what separates S3-FIFO from plain FIFO.

The bound is enforced locally at insert time: the combined admission check
in the cache cannot substitute, because demotions from main grow the ghost
without admitting anything. Capacity changes apply prospectively; shrinking
does not trim existing contents until the next insert.
*/
type Ghost struct {
	q        *deque.Deque[string]
	set      map[string]struct{}
	capacity int
}

// NewGhost returns an empty ghost registry with the given bound.
func NewGhost(capacity int) *Ghost {
	return &Ghost{
		q:        deque.New[string](),
		set:      make(map[string]struct{}),
		capacity: capacity,
	}
}

// Contains reports whether the registry remembers the key.
func (g *Ghost) Contains(key string) bool {
	_, ok := g.set[key]
	return ok
}

// Add records an evicted key at the tail, then drops oldest keys until the
// registry is back within its bound. Returns how many keys were dropped.
// Duplicate keys are ignored: residency and ghost membership are disjoint,
// so a duplicate means the caller already holds the key elsewhere.
func (g *Ghost) Add(key string) int {
	if _, ok := g.set[key]; ok {
		return 0
	}
	g.q.PushBack(key)
	g.set[key] = struct{}{}

	trimmed := 0
	for g.q.Len() > g.capacity {
		oldest := g.q.PopFront()
		delete(g.set, oldest)
		trimmed++
	}
	return trimmed
}

// Remove forgets the key. Reports whether it was remembered. Used on the
// put fast path (the key is being re-admitted) and on invalidation.
func (g *Ghost) Remove(key string) bool {
	if _, ok := g.set[key]; !ok {
		return false
	}
	delete(g.set, key)
	i := g.q.Index(func(k string) bool { return k == key })
	if i >= 0 {
		g.q.Remove(i)
	}
	return true
}

// Len returns the number of remembered keys.
func (g *Ghost) Len() int {
	return g.q.Len()
}

// Capacity returns the configured bound.
func (g *Ghost) Capacity() int {
	return g.capacity
}

// SetCapacity replaces the bound. Applied at the next Add; existing
// contents are never trimmed eagerly.
func (g *Ghost) SetCapacity(n int) {
	g.capacity = n
}

// Keys returns the remembered keys, oldest first.
func (g *Ghost) Keys() []string {
	keys := make([]string, 0, g.q.Len())
	for i := 0; i < g.q.Len(); i++ {
		keys = append(keys, g.q.At(i))
	}
	return keys
}

// Clear forgets everything.
func (g *Ghost) Clear() {
	g.q.Clear()
	for k := range g.set {
		delete(g.set, k)
	}
}
