// Package cache provides the bounded name-resolution cache.
//
// The cache maps object names to resolved coordinates with
// least-recently-used eviction, so repeated lookups of the same name in a
// batch issue a single remote call. It was deliberately made an explicit,
// constructor-injected object rather than ambient package state: resolvers
// receive their cache, tests build their own, and independent clients do
// not share entries.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/skyviewhq/skyview/internal/domain"
)

// DefaultCapacity is the cache capacity used when none is configured.
const DefaultCapacity = 256

// Names is a fixed-capacity LRU store of name → coordinate resolutions.
// All operations are safe for concurrent use; each Get and Put is one
// critical section. Callers must not assume atomicity across a Get+Put
// pair: two goroutines may both miss on the same name and both resolve it
// remotely, which duplicates work but never corrupts the cache.
type Names struct {
	lru *lru.Cache[string, domain.Coordinate]
}

// NewNames creates a cache holding at most capacity entries. Inserting
// past capacity evicts the least-recently-used entry; a Get hit refreshes
// recency.
func NewNames(capacity int) (*Names, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: cache capacity must be positive, got %d", domain.ErrInvalidConfig, capacity)
	}
	l, err := lru.New[string, domain.Coordinate](capacity)
	if err != nil {
		return nil, err
	}
	return &Names{lru: l}, nil
}

// Get returns the cached coordinate for name, if present.
func (n *Names) Get(name string) (domain.Coordinate, bool) {
	return n.lru.Get(name)
}

// Put stores a resolved coordinate for name.
func (n *Names) Put(name string, c domain.Coordinate) {
	n.lru.Add(name, c)
}

// Len returns the number of cached entries.
func (n *Names) Len() int {
	return n.lru.Len()
}
