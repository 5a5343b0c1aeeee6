package slotcache

import (
	"fmt"
	"time"

	"github.com/karupanerura/slotcache/expiration"
)

// MaxAge is an optional duration limiting how long an entry stays fresh.
// The zero value means "no max age": the entry never expires.
// A valid MaxAge of zero is different: the entry expires as soon as any time passes.
type MaxAge struct {
	// Duration is the max age. It is meaningful only when Valid is true.
	Duration time.Duration

	// Valid reports whether the max age is set.
	Valid bool
}

// MaxAgeOf returns a valid MaxAge of the given duration.
func MaxAgeOf(d time.Duration) MaxAge {
	return MaxAge{Duration: d, Valid: true}
}

// NoMaxAge returns a MaxAge that never expires.
func NoMaxAge() MaxAge {
	return MaxAge{}
}

// Or returns m if it is valid, otherwise fallback.
func (m MaxAge) Or(fallback MaxAge) MaxAge {
	if m.Valid {
		return m
	}
	return fallback
}

func (m MaxAge) String() string {
	if !m.Valid {
		return "none"
	}
	return m.Duration.String()
}

// CacheEntry is an immutable value stamped with the time it was requested.
// It may carry its own max age.
type CacheEntry[T ValueConstraint] struct {
	value       T
	requestTime time.Time
	maxAge      MaxAge
}

// NewCacheEntry creates a new entry.
// The value must not be nil for reference types.
// It returns ErrInvalidTimestamp if requestTime is not in UTC.
func NewCacheEntry[T ValueConstraint](value T, requestTime time.Time, maxAge MaxAge) (*CacheEntry[T], error) {
	if loc := requestTime.Location(); loc != time.UTC {
		return nil, fmt.Errorf("%w: got location %q", ErrInvalidTimestamp, loc)
	}
	return &CacheEntry[T]{
		value:       value,
		requestTime: requestTime,
		maxAge:      maxAge,
	}, nil
}

// Value returns the cached value.
func (e *CacheEntry[T]) Value() T {
	return e.value
}

// RequestTime returns the time the entry was requested at.
func (e *CacheEntry[T]) RequestTime() time.Time {
	return e.requestTime
}

// MaxAge returns the entry's own max age.
func (e *CacheEntry[T]) MaxAge() MaxAge {
	return e.maxAge
}

// Age returns how much time has passed since the entry was requested.
func (e *CacheEntry[T]) Age(now time.Time) time.Duration {
	return now.Sub(e.requestTime)
}

// ExpireTime returns the time the entry expires at.
// override takes precedence over the entry's own max age when valid.
// The second result is false if the entry never expires.
func (e *CacheEntry[T]) ExpireTime(override MaxAge) (time.Time, bool) {
	maxAge := override.Or(e.maxAge)
	if !maxAge.Valid {
		return time.Time{}, false
	}
	return e.requestTime.Add(maxAge.Duration), true
}

// AgeLeft returns the remaining time until the entry expires.
// It is negative once the entry has expired.
// The second result is false if the entry never expires.
func (e *CacheEntry[T]) AgeLeft(now time.Time, override MaxAge) (time.Duration, bool) {
	expiresAt, ok := e.ExpireTime(override)
	if !ok {
		return 0, false
	}
	return expiresAt.Sub(now), true
}

// IsExpired reports whether the entry's age exceeds its effective max age.
func (e *CacheEntry[T]) IsExpired(now time.Time, override MaxAge) bool {
	return e.IsExpiredBy(expiration.StrictPolicy{}, now, override)
}

// IsExpiredBy is like IsExpired but decides through the given policy.
// An entry without an effective max age is never expired.
func (e *CacheEntry[T]) IsExpiredBy(policy expiration.Policy, now time.Time, override MaxAge) bool {
	expiresAt, ok := e.ExpireTime(override)
	if !ok {
		return false
	}
	return policy.IsExpired(now, expiresAt)
}
