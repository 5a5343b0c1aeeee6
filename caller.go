package slotcache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/karupanerura/slotcache/internal/ctxsync"
)

// installFunc puts a regenerated entry into the slot.
// It returns the entry the caller should use and the entry to evict, if any.
type installFunc[T ValueConstraint] func(created *CacheEntry[T]) (entry, displaced *CacheEntry[T])

// caller schedules a regeneration and installs its result.
// All call modes share the same install step.
// The returned displaced entry must be evicted by the goroutine that called call.
type caller[T ValueConstraint] interface {
	call(ctx context.Context, regenerate func(context.Context) (*CacheEntry[T], error), install installFunc[T]) (entry, displaced *CacheEntry[T], err error)
}

func newCaller[T ValueConstraint](o *options[T]) caller[T] {
	switch o.mode {
	case Concurrent:
		return concurrentCaller[T]{}
	case Coalesced:
		return &coalescedCaller[T]{context: o.context}
	default:
		return &singleThreadedCaller[T]{mu: ctxsync.NewMutex()}
	}
}

// singleThreadedCaller holds a mutex around the regenerator invocation only.
type singleThreadedCaller[T ValueConstraint] struct {
	mu *ctxsync.Mutex
}

func (c *singleThreadedCaller[T]) call(ctx context.Context, regenerate func(context.Context) (*CacheEntry[T], error), install installFunc[T]) (*CacheEntry[T], *CacheEntry[T], error) {
	created, err := c.invoke(ctx, regenerate)
	if err != nil {
		return nil, nil, err
	}
	entry, displaced := install(created)
	return entry, displaced, nil
}

func (c *singleThreadedCaller[T]) invoke(ctx context.Context, regenerate func(context.Context) (*CacheEntry[T], error)) (*CacheEntry[T], error) {
	if err := c.mu.LockCtx(ctx); err != nil {
		return nil, err
	}
	defer c.mu.Unlock()

	return regenerate(ctx)
}

type concurrentCaller[T ValueConstraint] struct{}

func (concurrentCaller[T]) call(ctx context.Context, regenerate func(context.Context) (*CacheEntry[T], error), install installFunc[T]) (*CacheEntry[T], *CacheEntry[T], error) {
	created, err := regenerate(ctx)
	if err != nil {
		return nil, nil, err
	}
	entry, displaced := install(created)
	return entry, displaced, nil
}

// coalescedFlightKey is the only key of the flight group: a cache has one slot.
const coalescedFlightKey = "slot"

// coalescedCaller runs the regenerator once per flight.
// The first caller that receives the flight's result installs it and evicts what it displaced.
// The other callers of the flight receive the installed entry.
type coalescedCaller[T ValueConstraint] struct {
	group   singleflight.Group
	context func() context.Context
}

func (c *coalescedCaller[T]) call(ctx context.Context, regenerate func(context.Context) (*CacheEntry[T], error), install installFunc[T]) (*CacheEntry[T], *CacheEntry[T], error) {
	ch := c.group.DoChan(coalescedFlightKey, func() (any, error) {
		created, err := regenerate(c.context())
		if err != nil {
			return nil, err
		}
		return &flightResult[T]{created: created}, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, nil, r.Err
		}
		entry, displaced := r.Val.(*flightResult[T]).install(install)
		return entry, displaced, nil
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// flightResult is shared by every caller of a flight.
// If every caller stops waiting, the regenerated entry never enters the slot.
type flightResult[T ValueConstraint] struct {
	created *CacheEntry[T]
	once    sync.Once
	entry   *CacheEntry[T]
}

// install installs the result once.
// Only the caller that actually installed it gets the displaced entry.
func (r *flightResult[T]) install(install installFunc[T]) (entry, displaced *CacheEntry[T]) {
	r.once.Do(func() {
		r.entry, displaced = install(r.created)
	})
	return r.entry, displaced
}
