package regenerator

import (
	"context"
	"time"

	"github.com/karupanerura/slotcache"
)

// Func is a function type that implements the slotcache.Regenerator interface.
type Func[T slotcache.ValueConstraint] func(ctx context.Context, previous *slotcache.CacheEntry[T], requestTime time.Time, maxAge slotcache.MaxAge) (*slotcache.CacheEntry[T], error)

var _ slotcache.Regenerator[struct{}] = (Func[struct{}])(nil)

// Regenerate calls the function.
func (f Func[T]) Regenerate(ctx context.Context, previous *slotcache.CacheEntry[T], requestTime time.Time, maxAge slotcache.MaxAge) (*slotcache.CacheEntry[T], error) {
	return f(ctx, previous, requestTime, maxAge)
}

// Loader is a regenerator that loads a new value with a function and wraps it in a new entry.
// The entry is stamped with the request time and the max age given by the cache.
type Loader[T slotcache.ValueConstraint] func(context.Context) (T, error)

var _ slotcache.Regenerator[struct{}] = (Loader[struct{}])(nil)

// Regenerate loads a value and returns it as a new entry.
// It always creates a new entry, even if the previous one is still fresh.
func (l Loader[T]) Regenerate(ctx context.Context, _ *slotcache.CacheEntry[T], requestTime time.Time, maxAge slotcache.MaxAge) (*slotcache.CacheEntry[T], error) {
	value, err := l(ctx)
	if err != nil {
		return nil, err
	}
	return slotcache.NewCacheEntry(value, requestTime, maxAge)
}

// KeepFresh is a regenerator that returns the previous entry as is while it is fresh.
// Otherwise it delegates to the wrapped regenerator.
// It is useful when the cache checks freshness with a shorter max age than the entry's own one,
// or with an early expiration policy.
type KeepFresh[T slotcache.ValueConstraint] struct {
	// Regenerator is called when the previous entry is missing or expired.
	Regenerator slotcache.Regenerator[T]

	// MaxAge overrides the previous entry's own max age when valid.
	MaxAge slotcache.MaxAge
}

var _ slotcache.Regenerator[struct{}] = (*KeepFresh[struct{}])(nil)

// Regenerate returns previous if it has not expired at requestTime.
func (k *KeepFresh[T]) Regenerate(ctx context.Context, previous *slotcache.CacheEntry[T], requestTime time.Time, maxAge slotcache.MaxAge) (*slotcache.CacheEntry[T], error) {
	if previous != nil && !previous.IsExpired(requestTime, k.MaxAge) {
		return previous, nil
	}
	return k.Regenerator.Regenerate(ctx, previous, requestTime, maxAge)
}

// Lint is a regenerator that is used for linting purposes.
// It validates the behavior of the wrapped regenerator, ensuring it properly follows the slotcache.Regenerator contract.
type Lint[T slotcache.ValueConstraint] struct {
	Regenerator slotcache.Regenerator[T]
}

var _ slotcache.Regenerator[struct{}] = (*Lint[struct{}])(nil)

// Regenerate calls the wrapped regenerator.
// It panics if the regenerator returns neither an entry nor an error,
// or an entry without a request time (e.g. a zero CacheEntry literal).
// The cache recovers the panic and returns it to the caller as an error.
func (l *Lint[T]) Regenerate(ctx context.Context, previous *slotcache.CacheEntry[T], requestTime time.Time, maxAge slotcache.MaxAge) (*slotcache.CacheEntry[T], error) {
	entry, err := l.Regenerator.Regenerate(ctx, previous, requestTime, maxAge)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		panic("regenerator returned nil entry without error")
	}
	if entry.RequestTime().IsZero() {
		panic("missing request time")
	}
	return entry, nil
}
