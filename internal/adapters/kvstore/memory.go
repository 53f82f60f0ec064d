package kvstore

import (
	"context"
	"sync"
	"time"

	"github.com/Kabuna254/Job-App/internal/ports"
)

// Memory is an in-process KV backend for development and single-instance use.
// Entries expire after ttl when it is positive. Expired entries are dropped
// when read, and Set sweeps the whole map at most once per ttl.
type Memory struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

type memoryEntry struct {
	value   string
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

var (
	_ ports.KVStore     = (*Memory)(nil)
	_ ports.StatePurger = (*Memory)(nil)
)

// NewMemory creates an empty store.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	now := m.now()
	if e.expired(now) {
		m.mu.Lock()
		// A concurrent Set may have refreshed the key since the read.
		if cur, still := m.entries[key]; still && cur.expired(now) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return "", ports.ErrKeyNotFound
	}
	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	now := m.now()
	e := memoryEntry{value: value}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	if m.ttl > 0 && !now.Before(m.nextSweep) {
		m.purgeLocked(now)
		m.nextSweep = now.Add(m.ttl)
	}
	m.mu.Unlock()
	return nil
}

// PurgeExpired drops every expired entry and reports how many went.
func (m *Memory) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purgeLocked(m.now()), nil
}

func (m *Memory) purgeLocked(now time.Time) int64 {
	var n int64
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Guard is the in-process SubmissionGuard.
type Guard struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

var _ ports.SubmissionGuard = (*Guard)(nil)

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{held: make(map[string]time.Time), now: time.Now}
}

// TryAcquire takes key for at most ttl. Leases that outlived their ttl are
// reclaimed, including those of other keys whose release never ran.
func (g *Guard) TryAcquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, until := range g.held {
		if !now.Before(until) {
			delete(g.held, k)
		}
	}
	if _, ok := g.held[key]; ok {
		return nil, false, nil
	}
	until := now.Add(ttl)
	g.held[key] = until

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			if g.held[key].Equal(until) {
				delete(g.held, key)
			}
			g.mu.Unlock()
		})
	}, true, nil
}
