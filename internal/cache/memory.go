package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

type counter struct {
	hits    int
	resetAt time.Time
}

// Memory is an in-process Store. Entries are evicted lazily on access.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]entry
	counters map[string]*counter
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries:  make(map[string]entry),
		counters: make(map[string]*counter),
		now:      time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *Memory) IsRateLimited(_ context.Context, key string, limit int, window time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, c := range m.counters {
		if !now.Before(c.resetAt) {
			delete(m.counters, k)
		}
	}

	c, ok := m.counters[key]
	if !ok {
		c = &counter{resetAt: now.Add(window)}
		m.counters[key] = c
	}
	c.hits++
	return c.hits > limit
}

func (m *Memory) Close() error {
	return nil
}
