package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-search/internal/metrics"
	"github.com/i474232898/weather-search/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh payload is cached for a key.
	ErrNotFound = errors.New("no cached weather for query")
)

type entry struct {
	payload  weather.Payload
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory payload cache.
type MemoryStore struct {
	mu sync.RWMutex

	// key: query key, value: cached payload
	data map[string]entry

	// insertion order, oldest first; used for count-based retention
	order []string

	maxEntries int           // max number of cached queries
	maxAge     time.Duration // entries older than this are treated as missing

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries or maxAge is <= 0, that limit is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save stores payload under key, replacing any previous value, and enforces
// count-based retention.
func (s *MemoryStore) Save(_ context.Context, key string, payload weather.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		s.removeFromOrder(key)
	}
	s.data[key] = entry{payload: payload, storedAt: s.now()}
	s.order = append(s.order, key)

	if s.maxEntries > 0 && len(s.order) > s.maxEntries {
		over := len(s.order) - s.maxEntries
		for _, k := range s.order[:over] {
			delete(s.data, k)
		}
		s.order = append([]string(nil), s.order[over:]...)
		metrics.CacheEvictions.WithLabelValues("memory").Add(float64(over))
	}
	return nil
}

// Get returns the cached payload for key if it is still fresh.
func (s *MemoryStore) Get(_ context.Context, key string) (weather.Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.expired(e) {
		return weather.Payload{}, ErrNotFound
	}
	return e.payload, nil
}

// Prune removes expired entries and returns how many were dropped.
func (s *MemoryStore) Prune(_ context.Context) int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	removed := 0
	for _, k := range s.order {
		if s.expired(s.data[k]) {
			delete(s.data, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	s.order = kept
	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues("memory").Add(float64(removed))
	}
	return removed
}

// Len returns the number of cached entries, fresh or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expired(e entry) bool {
	return s.maxAge > 0 && s.now().Sub(e.storedAt) > s.maxAge
}

func (s *MemoryStore) removeFromOrder(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
