package ctxsync

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Mutex is a mutual exclusion lock that can be waited for with a context.
// Use NewMutex to create one.
type Mutex struct {
	sem *semaphore.Weighted
}

// NewMutex returns an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{sem: semaphore.NewWeighted(1)}
}

// TryLock tries to lock m and reports whether it succeeded.
func (m *Mutex) TryLock() bool {
	return m.sem.TryAcquire(1)
}

// LockCtx locks m, waiting until it is available or ctx is done.
// If m is unlocked it is locked even when ctx is already done.
// If ctx is done first, it returns the context error and m is not locked.
func (m *Mutex) LockCtx(ctx context.Context) error {
	if m.TryLock() {
		return nil
	}
	return m.sem.Acquire(ctx, 1)
}

// Unlock unlocks m.
// It panics if m is not locked.
func (m *Mutex) Unlock() {
	m.sem.Release(1)
}
