package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Memory is an in-process TTL store. Expired entries are dropped lazily on
// read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*Entry
	nowFunc func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// MemoryOption configures the Memory store.
type MemoryOption func(*Memory)

// WithMemoryNowFunc overrides the time function for testing.
func WithMemoryNowFunc(f func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.nowFunc = f
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*Entry),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the entry under key when present and not expired.
func (m *Memory) Get(_ context.Context, key string) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.misses.Add(1)
		return nil, false
	}
	if m.nowFunc().After(e.ExpiresAt) {
		delete(m.entries, key)
		m.misses.Add(1)
		return nil, false
	}

	m.hits.Add(1)
	return e, true
}

// Set stores e under key, stamping its expiry. The whole entry is replaced;
// there are no partial updates.
func (m *Memory) Set(_ context.Context, key string, e *Entry, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ExpiresAt = m.nowFunc().Add(ttl)
	m.entries[key] = e
	m.sets.Add(1)
}

// Delete removes the entry under key, forcing the next Get to miss.
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Stats returns hit/miss/set counters and the live key count.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	keys := 0
	now := m.nowFunc()
	for _, e := range m.entries {
		if now.Before(e.ExpiresAt) {
			keys++
		}
	}
	m.mu.Unlock()

	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Sets:   m.sets.Load(),
		Keys:   keys,
	}
}
