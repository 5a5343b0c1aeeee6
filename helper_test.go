package slotcache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/karupanerura/slotcache"
)

var baseTime = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// manualClock is a clock that only moves when told to.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: baseTime}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// evictionRecorder records evicted entries.
type evictionRecorder[T any] struct {
	mu      sync.Mutex
	evicted []*slotcache.CacheEntry[T]
}

func (r *evictionRecorder[T]) OnEvict(e *slotcache.CacheEntry[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evicted = append(r.evicted, e)
}

func (r *evictionRecorder[T]) Evicted() []*slotcache.CacheEntry[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*slotcache.CacheEntry[T](nil), r.evicted...)
}

func mustNewEntry[T any](t testing.TB, value T, requestTime time.Time, maxAge slotcache.MaxAge) *slotcache.CacheEntry[T] {
	t.Helper()
	entry, err := slotcache.NewCacheEntry(value, requestTime, maxAge)
	if err != nil {
		t.Fatal(err)
	}
	return entry
}
