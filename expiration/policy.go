package expiration

import (
	"math/rand/v2"
	"time"
)

// Policy is the interface for the expiration time checker.
// Implementations determine when cached values should be considered expired.
type Policy interface {
	// IsExpired returns true if the value is expired.
	// The now parameter represents the current time, and expiresAt is the value's expiration time.
	IsExpired(now, expiresAt time.Time) bool
}

// StrictPolicy expires a value once the current time is strictly after its expiration time.
// An entry whose age equals its max age is still fresh.
// This is the default policy of the cache.
type StrictPolicy struct{}

var _ Policy = StrictPolicy{}

// IsExpired returns true if now > expiresAt.
func (StrictPolicy) IsExpired(now, expiresAt time.Time) bool {
	return now.After(expiresAt)
}

// GeneralPolicy is a policy that expires a value at a specific time.
// Unlike StrictPolicy, a value is already expired at the exact instant of its expiration time.
type GeneralPolicy struct{}

var _ Policy = GeneralPolicy{}

// IsExpired returns true if now >= expiresAt.
func (GeneralPolicy) IsExpired(now, expiresAt time.Time) bool {
	return !expiresAt.After(now)
}

// NeverPolicy is a policy that never expires a value.
// It keeps the current entry until it is replaced explicitly.
type NeverPolicy struct{}

var _ Policy = NeverPolicy{}

// IsExpired always returns false.
func (NeverPolicy) IsExpired(now, expiresAt time.Time) bool {
	return false
}

// EarlyPolicy is a policy that can expire a value before its actual expiration time.
// When many processes share one upstream value, this spreads their regenerations
// over a window instead of having all of them regenerate at the same instant.
type EarlyPolicy struct {
	// Duration is how much earlier the value can expire.
	Duration time.Duration

	// Percentage is the chance (between 0 and 1) that the value will expire early.
	// A value of 0 means never expire early, while 1 means always expire early.
	Percentage float64

	// Random is the random number generator to decide early expiration.
	// If not set, the default system random generator is used.
	Random *rand.Rand
}

var _ Policy = (*EarlyPolicy)(nil)

// IsExpired checks if the value is expired.
// With probability (1-Percentage) it behaves like StrictPolicy.
// With probability Percentage it checks now+Duration instead of now.
func (p *EarlyPolicy) IsExpired(now, expiresAt time.Time) bool {
	if p.randFloat64() > p.Percentage {
		return now.After(expiresAt)
	}
	return now.Add(p.Duration).After(expiresAt)
}

func (p *EarlyPolicy) randFloat64() float64 {
	if p.Random == nil {
		return rand.Float64()
	}
	return p.Random.Float64()
}
