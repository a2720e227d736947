// Package cache implements the keyed query cache the admin workflow renders
// from. Reads go through the cache with a staleness window and in-flight
// de-duplication; mutations patch the cached data in place after the
// underlying store has confirmed them, so no refetch is needed to observe a
// write.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusRefetching
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusRefetching:
		return "refetching"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// DefaultStaleAfter is how long a cached query stays fresh before it becomes
// eligible for refetch.
const DefaultStaleAfter = 5 * time.Minute

type entry struct {
	data      any
	status    Status
	fetchedAt time.Time
	err       error
}

// Store is a keyed query cache. It is constructed once and handed to the
// services that need it; nothing in this package keeps global state.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	staleAfter time.Duration
	group      singleflight.Group
	now        func() time.Time
}

type Option func(*Store)

// WithStaleAfter overrides the staleness window.
func WithStaleAfter(d time.Duration) Option {
	return func(s *Store) {
		s.staleAfter = d
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		entries:    make(map[string]*entry),
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RankingsKey is the cache key for the full rankings collection.
func RankingsKey() string {
	return "rankings"
}

// ItemsKey is the cache key for one ranking's item list.
func ItemsKey(rankingID string) string {
	return fmt.Sprintf("items/%s", rankingID)
}

// Status reports the entry's lifecycle state, StatusIdle when nothing has
// been fetched under the key yet.
func (s *Store) Status(key string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[key]; ok {
		return e.status
	}
	return StatusIdle
}

// Err returns the last fetch error recorded under the key, nil after any
// successful fetch or patch.
func (s *Store) Err(key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[key]; ok {
		return e.err
	}
	return nil
}

// Invalidate drops the entry so the next read fetches from the store.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// lookup returns the cached data if it is present and still fresh.
func (s *Store) lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.data == nil {
		return nil, false
	}
	if s.now().Sub(e.fetchedAt) >= s.staleAfter {
		return nil, false
	}
	return e.data, true
}

// markFetching flips the entry into Loading or Refetching depending on
// whether stale data is already present, and returns that stale data.
func (s *Store) markFetching(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.entries[key] = &entry{status: StatusLoading}
		return nil
	}
	if e.data != nil {
		e.status = StatusRefetching
	} else {
		e.status = StatusLoading
	}
	return e.data
}

func (s *Store) storeResult(key string, data any, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	if err != nil {
		// A failed refetch keeps whatever data was previously loaded.
		e.status = StatusError
		e.err = err
		return
	}
	e.data = data
	e.status = StatusLoaded
	e.fetchedAt = s.now()
	e.err = nil
}

// Fetch returns the cached value under key, fetching through fn when the
// entry is absent or stale. Concurrent calls for the same key share a single
// in-flight fetch. When a refetch fails but stale data exists, the stale data
// is returned and the error is recorded on the entry instead.
func Fetch[T any](ctx context.Context, s *Store, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if data, ok := s.lookup(key); ok {
		return data.(T), nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		stale := s.markFetching(key)
		data, err := fn(ctx)
		if err != nil {
			s.storeResult(key, nil, err)
			if stale != nil {
				return stale, nil
			}
			return nil, err
		}
		s.storeResult(key, data, nil)
		return data, nil
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

// Apply patches the cached value under key with a pure transform. It is the
// second phase of every mutation: called only after the underlying store
// confirmed the write. Nothing happens when the key has never been loaded;
// the next Fetch will see the authoritative state anyway.
func Apply[T any](s *Store, key string, transform func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.data == nil {
		return
	}
	e.data = transform(e.data.(T))
	e.status = StatusLoaded
	e.err = nil
}

// Put stores a value directly, replacing any cached entry. Used when a
// mutation returns the authoritative post-write state (reorder does).
func Put[T any](s *Store, key string, data T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.data = data
	e.status = StatusLoaded
	e.fetchedAt = s.now()
	e.err = nil
}
