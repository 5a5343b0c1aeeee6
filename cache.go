package slotcache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/karupanerura/slotcache/expiration"
	"github.com/karupanerura/slotcache/internal/panicutil"
)

// Cache is a thread-safe cache holding a single entry.
// The zero value is not usable; use New.
// The current entry is read and replaced with atomic operations only.
// When the entry is missing or expired, Get and GetItem regenerate it with the configured Regenerator.
//
// Every entry that leaves the slot is either returned to a caller (Replace)
// or passed to the eviction callback exactly once.
type Cache[T ValueConstraint] struct {
	current       atomic.Pointer[CacheEntry[T]]
	defaultMaxAge atomic.Pointer[MaxAge]

	regenerator Regenerator[T]
	caller      caller[T]
	onEvict     func(*CacheEntry[T])
	clock       Clock
	policy      expiration.Policy
	cloner      func() ValueCloner[T]
}

// New creates a new empty Cache.
func New[T ValueConstraint](opts ...Option[T]) *Cache[T] {
	o := defaultOptions[T]()
	for _, opt := range opts {
		opt.apply(&o)
	}

	c := &Cache[T]{
		regenerator: o.regenerator,
		caller:      newCaller(&o),
		onEvict:     o.onEvict,
		clock:       o.clock,
		policy:      o.policy,
	}
	if o.cloner != nil {
		cloner := o.cloner
		c.cloner = func() ValueCloner[T] { return cloner }
	} else {
		// resolved on first use: DefaultValueCloner panics for types that cannot be cloned.
		c.cloner = sync.OnceValue(DefaultValueCloner[T])
	}
	c.SetDefaultMaxAge(o.defaultMaxAge)
	return c
}

// DefaultMaxAge returns the max age given to new entries without their own max age.
func (c *Cache[T]) DefaultMaxAge() MaxAge {
	return *c.defaultMaxAge.Load()
}

// SetDefaultMaxAge sets the max age given to new entries without their own max age.
// It does not affect entries that already exist.
func (c *Cache[T]) SetDefaultMaxAge(maxAge MaxAge) {
	c.defaultMaxAge.Store(&maxAge)
}

// Current returns the current entry regardless of its freshness, or nil if the slot is empty.
func (c *Cache[T]) Current() *CacheEntry[T] {
	return c.current.Load()
}

// Set stores the value as a new entry requested now.
// If maxAge is not valid, the default max age is used.
// The displaced entry, if any, is evicted.
func (c *Cache[T]) Set(value T, maxAge MaxAge) error {
	entry, err := NewCacheEntry(value, c.clock.Now(), maxAge.Or(c.DefaultMaxAge()))
	if err != nil {
		return err
	}
	c.SetEntry(entry)
	return nil
}

// SetEntry makes the entry current. A nil entry clears the slot.
// The displaced entry is evicted unless it is the same entry.
func (c *Cache[T]) SetEntry(entry *CacheEntry[T]) {
	if previous := c.current.Swap(entry); previous != entry {
		c.evict(previous)
	}
}

// Replace makes the entry current and returns the displaced entry without evicting it.
// The caller takes over the responsibility for the returned entry.
func (c *Cache[T]) Replace(entry *CacheEntry[T]) *CacheEntry[T] {
	return c.current.Swap(entry)
}

// Peek returns the current value if it is fresh.
// If maxAge is valid, it is used instead of the entry's own max age.
// Peek never regenerates.
func (c *Cache[T]) Peek(maxAge MaxAge) (T, bool) {
	entry := c.current.Load()
	if entry == nil || c.isExpired(entry, maxAge) {
		var zero T
		return zero, false
	}
	return entry.Value(), true
}

// Get returns the current value, regenerating it if it is missing or expired.
// If maxAge is valid, it is used instead of the entry's own max age to check freshness.
// It returns ErrCacheEmpty if there is no fresh value and no regenerator.
func (c *Cache[T]) Get(ctx context.Context, maxAge MaxAge) (T, error) {
	entry, err := c.GetItem(ctx, maxAge)
	if err != nil {
		var zero T
		return zero, err
	}
	if entry == nil {
		var zero T
		return zero, ErrCacheEmpty
	}
	return entry.Value(), nil
}

// GetCopy is like Get but returns a clone of the value made by the value cloner.
func (c *Cache[T]) GetCopy(ctx context.Context, maxAge MaxAge) (T, error) {
	v, err := c.Get(ctx, maxAge)
	if err != nil {
		return v, err
	}
	return c.cloner().CloneValue(v), nil
}

// GetItem returns the current entry, regenerating it if it is missing or expired.
// If maxAge is valid, it is used instead of the entry's own max age to check freshness.
// It returns nil if there is no fresh entry and no regenerator.
//
// When several callers regenerate at the same time, only one result is published.
// The others are evicted and their callers receive the published entry.
// Evictions caused by GetItem run on the calling goroutine before it returns.
// Errors from the regenerator are returned as is and leave the slot untouched.
func (c *Cache[T]) GetItem(ctx context.Context, maxAge MaxAge) (*CacheEntry[T], error) {
	snapshot := c.current.Load()
	if snapshot != nil && !c.isExpired(snapshot, maxAge) {
		return snapshot, nil
	}
	if c.regenerator == nil {
		return nil, nil
	}

	requestTime := c.clock.Now()
	entry, displaced, err := c.caller.call(ctx, func(ctx context.Context) (*CacheEntry[T], error) {
		return c.regenerate(ctx, snapshot, requestTime)
	}, func(created *CacheEntry[T]) (*CacheEntry[T], *CacheEntry[T]) {
		return c.install(snapshot, created)
	})
	if err != nil {
		return nil, err
	}
	c.evict(displaced)
	return entry, nil
}

// regenerate invokes the regenerator, turning a panic into an error.
func (c *Cache[T]) regenerate(ctx context.Context, snapshot *CacheEntry[T], requestTime time.Time) (*CacheEntry[T], error) {
	var created *CacheEntry[T]
	if err := panicutil.Call(func() (err error) {
		created, err = c.regenerator.Regenerate(ctx, snapshot, requestTime, c.DefaultMaxAge())
		return
	}); err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrRegeneratorContract
	}
	return created, nil
}

// install puts created in place of snapshot.
// It returns the entry the caller should use and the entry that has to be evicted, if any.
// It never calls the eviction callback itself.
func (c *Cache[T]) install(snapshot, created *CacheEntry[T]) (entry, displaced *CacheEntry[T]) {
	if created == snapshot {
		return snapshot, nil
	}

	expected := snapshot
	for {
		if c.current.CompareAndSwap(expected, created) {
			return created, expected
		}

		actual := c.current.Load()
		switch {
		case actual == created:
			// published by someone else already
			return created, nil
		case actual == expected:
			// the slot went away and came back between the CAS and the load
			continue
		case actual != nil:
			// lost to a fresher entry: created was never visible to anyone
			return actual, created
		}
		// the slot was cleared meanwhile, retry against the empty slot
		expected = nil
	}
}

func (c *Cache[T]) isExpired(entry *CacheEntry[T], maxAge MaxAge) bool {
	return entry.IsExpiredBy(c.policy, c.clock.Now(), maxAge)
}

func (c *Cache[T]) evict(entry *CacheEntry[T]) {
	if entry != nil && c.onEvict != nil {
		c.onEvict(entry)
	}
}
