package slotcache

import (
	"context"
	"strconv"

	"github.com/karupanerura/slotcache/expiration"
)

// CallMode decides how concurrent regenerations of one cache are scheduled.
type CallMode int

const (
	// SingleThreaded serializes regenerator invocations for a cache instance.
	// Only the invocation is serialized, publishing the result is not.
	SingleThreaded CallMode = iota

	// Concurrent lets regenerator invocations run simultaneously.
	// The regenerator must be safe to call concurrently.
	Concurrent

	// Coalesced lets callers that miss at the same time share a single
	// regeneration and receive the entry installed from it.
	// The first caller to receive the result installs it and runs the eviction callback.
	Coalesced
)

func (m CallMode) String() string {
	switch m {
	case SingleThreaded:
		return "SingleThreaded"
	case Concurrent:
		return "Concurrent"
	case Coalesced:
		return "Coalesced"
	default:
		return "CallMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Option is the interface for the options of the Cache.
type Option[T ValueConstraint] interface {
	apply(*options[T])
}

type optionFunc[T ValueConstraint] func(*options[T])

func (f optionFunc[T]) apply(o *options[T]) {
	f(o)
}

// WithRegenerator sets the regenerator invoked when the entry is missing or expired.
// Without a regenerator, Get fails with ErrCacheEmpty and GetItem returns nil.
func WithRegenerator[T ValueConstraint](regenerator Regenerator[T]) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.regenerator = regenerator
	})
}

// WithCallMode sets the call mode of the regenerator.
// The default call mode is SingleThreaded.
func WithCallMode[T ValueConstraint](mode CallMode) Option[T] {
	switch mode {
	case SingleThreaded, Concurrent, Coalesced:
	default:
		panic("unknown call mode: " + mode.String())
	}
	return optionFunc[T](func(o *options[T]) {
		o.mode = mode
	})
}

// WithEvictionCallback sets the callback notified of evicted entries.
func WithEvictionCallback[T ValueConstraint](onEvict func(*CacheEntry[T])) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.onEvict = onEvict
	})
}

// WithDefaultMaxAge sets the initial default max age of the cache.
// The default max age can be changed later by Cache.SetDefaultMaxAge.
func WithDefaultMaxAge[T ValueConstraint](maxAge MaxAge) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.defaultMaxAge = maxAge
	})
}

// WithClock sets the clock to the cache.
// The clock must return times in UTC.
func WithClock[T ValueConstraint](clock Clock) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.clock = clock
	})
}

// WithExpirationPolicy sets the expiration policy used to check the freshness of the current entry.
// The default expiration policy is expiration.StrictPolicy.
func WithExpirationPolicy[T ValueConstraint](policy expiration.Policy) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.policy = policy
	})
}

// WithValueCloner sets the value cloner used by Cache.GetCopy.
// The default value cloner is DefaultValueCloner.
func WithValueCloner[T ValueConstraint](cloner ValueCloner[T]) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.cloner = cloner
	})
}

// WithBackgroundContextProvider sets the context provider for coalesced regenerations.
// A coalesced regeneration outlives the caller that started it, so it does not run with the caller's context.
// The provider must return a new context for each call.
// The default context provider is context.Background.
func WithBackgroundContextProvider[T ValueConstraint](provider func() context.Context) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.context = provider
	})
}

type options[T ValueConstraint] struct {
	regenerator   Regenerator[T]
	mode          CallMode
	onEvict       func(*CacheEntry[T])
	defaultMaxAge MaxAge
	clock         Clock
	policy        expiration.Policy
	cloner        ValueCloner[T]
	context       func() context.Context
}

func defaultOptions[T ValueConstraint]() options[T] {
	return options[T]{
		mode:    SingleThreaded,
		clock:   SystemClock,
		policy:  expiration.StrictPolicy{},
		context: context.Background,
	}
}
