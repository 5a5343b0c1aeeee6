package slotcache

import (
	"context"
	"time"
)

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// Regenerator produces a fresh entry when the current one is stale or absent.
// Implementations must be thread-safe when used with the Concurrent call mode.
type Regenerator[T ValueConstraint] interface {
	// Regenerate returns the entry that should become current.
	// previous is the entry observed by the caller, or nil if the slot was empty.
	// requestTime is the UTC time at which the regeneration was requested and
	// maxAge is the cache's default max age at that moment.
	//
	// It must never return a nil entry without an error.
	// It may return previous itself to signal that no change is needed.
	Regenerate(ctx context.Context, previous *CacheEntry[T], requestTime time.Time, maxAge MaxAge) (*CacheEntry[T], error)
}
