// Package cache provides the in-process TTL LRU used for derived-state
// caching and a manager that reclaims expired entries on a timer.
package cache

import (
	"sync"
	"time"
)

// Cache is the read/write surface consumers hold. Cleanup is not part
// of it; that belongs to the Manager via Cleaner.
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Clear removes every entry
	Clear()

	// Size returns the current number of items in the cache
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically cleans every registered cache, so expired
// entries are reclaimed even when nothing reads or evicts them.
type Manager struct {
	caches []Cleaner
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewManager() *Manager {
	return &Manager{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Register adds a cache to the cleanup rotation. Call before
// StartCleanup; the slice is not guarded.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// StartCleanup launches the cleanup goroutine. Stop it with Stop.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.run(interval)
}

func (m *Manager) run(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range m.caches {
				c.CleanExpired()
			}
		case <-m.stop:
			return
		}
	}
}

// Stop halts the cleanup goroutine and waits for it to exit. Safe to
// call more than once.
func (m *Manager) Stop() {
	m.once.Do(func() {
		close(m.stop)
		<-m.done
	})
}
