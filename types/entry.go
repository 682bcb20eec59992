package types

// CacheEntry is a single resident cache entry: the key, its value, and the
// access weight that drives promotion decisions.
//
// Weight is a plain int, not an atomic. Every mutation happens while the
// owning cache holds its lock, so the field needs no synchronization of
// its own.
type CacheEntry struct {
	Key    string
	Value  any
	Weight int
}

// NewCacheEntry returns an entry with weight 0. Entries always start cold;
// weight only grows through Touch on later hits.
func NewCacheEntry(key string, value any) *CacheEntry {
	return &CacheEntry{Key: key, Value: value}
}

// Touch bumps the access weight, saturating at maxWeight. If maxWeight was
// lowered below the current weight at runtime, the weight is clamped down
// to the new bound.
func (e *CacheEntry) Touch(maxWeight int) {
	e.Weight++
	if e.Weight > maxWeight {
		e.Weight = maxWeight
	}
}

// ResetWeight clears the access weight. Called when the entry crosses a
// queue boundary: promotion into the main queue, or re-admission through
// the ghost registry.
func (e *CacheEntry) ResetWeight() {
	e.Weight = 0
}
