package store

import "github.com/krisalay/s3fifo-cache/types"

/*
This file defines the entry store: the associative index over every resident
entry, shared between the small and main queues.

The store does NOT own entry lifecycle. An entry lives in exactly one queue;
the store holds the same pointer so lookups stay O(1). It is also NOT
self-synchronizing: the cache serializes every access under its own lock,
because a reader must never see a key in the store that its owning queue has
already given up (or the reverse). A store with its own lock could not make
that guarantee anyway, so it carries none.
*/

// Store is the interface the cache uses to index resident entries by key.
type Store interface {

	// Get retrieves an entry by key.
	Get(key string) (*types.CacheEntry, bool)

	// Put inserts or replaces an entry.
	Put(key string, ent *types.CacheEntry)

	// Delete removes an entry. No-op on missing key.
	Delete(key string)

	// Len returns how many entries are stored.
	Len() int

	// Keys returns the stored key set in no particular order.
	Keys() []string

	// Clear drops every entry.
	Clear()
}

// mapStore is the plain map implementation of Store.
type mapStore struct {
	data map[string]*types.CacheEntry
}

// New returns an empty map-backed Store.
func New() Store {
	return &mapStore{data: make(map[string]*types.CacheEntry)}
}

func (s *mapStore) Get(key string) (*types.CacheEntry, bool) {
	ent, ok := s.data[key]
	return ent, ok
}

func (s *mapStore) Put(key string, ent *types.CacheEntry) {
	s.data[key] = ent
}

func (s *mapStore) Delete(key string) {
	delete(s.data, key)
}

func (s *mapStore) Len() int {
	return len(s.data)
}

func (s *mapStore) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

func (s *mapStore) Clear() {
	s.data = make(map[string]*types.CacheEntry)
}
