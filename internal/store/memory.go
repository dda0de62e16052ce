// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Hacking sessions are mutable and single-owner, so the store is where the
// HTTP host gets its serialization: With runs a callback while holding
// that session's own lock.
//
// Characteristics:
//   - Bounded by an LRU cache; the least recently used session is evicted.
//   - Concurrency-safe: each entry carries its own mutex, lookups go through the cache.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/robalobadob/termhack/internal/game"
)

// ErrNotFound is returned for unknown or evicted session IDs.
var ErrNotFound = errors.New("store: session not found")

// DefaultCapacity bounds the number of live sessions when none is configured.
const DefaultCapacity = 1024

// Store defines the persistence interface for hacking sessions.
type Store interface {
	// Save adds or replaces a session under its ID.
	Save(ctx context.Context, s *game.Session) error

	// With looks up a session and runs fn while holding its lock.
	// fn's error is returned as is.
	With(ctx context.Context, id string, fn func(s *game.Session) error) error
}

type entry struct {
	mu      sync.Mutex
	session *game.Session
}

// memory is an LRU-bounded Store implementation.
type memory struct {
	cache *lru.Cache[string, *entry]
}

// NewMemoryStore constructs an in-memory Store holding at most capacity sessions.
// A non-positive capacity uses DefaultCapacity.
func NewMemoryStore(capacity int) (Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, err := lru.New[string, *entry](capacity)
	if err != nil {
		return nil, err
	}
	return &memory{cache: c}, nil
}

// Save adds or replaces the session.
func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.cache.Add(s.ID, &entry{session: s})
	return nil
}

// With serializes access to a single session.
func (m *memory) With(ctx context.Context, id string, fn func(s *game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, ok := m.cache.Get(id)
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}
