package expiration_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/karupanerura/slotcache/expiration"
)

var now = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

func TestPolicies(t *testing.T) {
	t.Parallel()

	offsets := []struct {
		name   string
		offset time.Duration
	}{
		{name: "expires later", offset: time.Nanosecond},
		{name: "expires now", offset: 0},
		{name: "expired before", offset: -time.Nanosecond},
		{name: "expired long ago", offset: -1000 * time.Hour},
	}

	tests := []struct {
		name   string
		policy expiration.Policy
		want   []bool // indexed like offsets
	}{
		{name: "StrictPolicy", policy: expiration.StrictPolicy{}, want: []bool{false, false, true, true}},
		{name: "GeneralPolicy", policy: expiration.GeneralPolicy{}, want: []bool{false, true, true, true}},
		{name: "NeverPolicy", policy: expiration.NeverPolicy{}, want: []bool{false, false, false, false}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for i, o := range offsets {
				if got := tt.policy.IsExpired(now, now.Add(o.offset)); got != tt.want[i] {
					t.Errorf("%s: IsExpired() = %v, want %v", o.name, got, tt.want[i])
				}
			}
		})
	}
}

// fixedSource makes rand.Rand.Float64 return the same value every time.
type fixedSource float64

func (s fixedSource) Uint64() uint64 {
	return uint64(float64(s) * (1 << 53))
}

func TestEarlyPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		roll       float64
		percentage float64
		expiresIn  time.Duration
		want       bool
	}{
		{name: "roll above percentage behaves strictly", roll: 0.75, percentage: 0.5, expiresIn: 5 * time.Minute, want: false},
		{name: "roll above percentage still expires past entries", roll: 0.75, percentage: 0.5, expiresIn: -time.Second, want: true},
		{name: "roll below percentage expires within the window", roll: 0.25, percentage: 0.5, expiresIn: 5 * time.Minute, want: true},
		{name: "roll below percentage keeps entries beyond the window", roll: 0.25, percentage: 0.5, expiresIn: 15 * time.Minute, want: false},
		{name: "zero percentage never expires early", roll: 0.25, percentage: 0, expiresIn: 5 * time.Minute, want: false},
		{name: "full percentage always expires early", roll: 0.75, percentage: 1, expiresIn: 9 * time.Minute, want: true},
		{name: "window end is still fresh", roll: 0.25, percentage: 1, expiresIn: 10 * time.Minute, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			policy := &expiration.EarlyPolicy{
				Duration:   10 * time.Minute,
				Percentage: tt.percentage,
				Random:     rand.New(fixedSource(tt.roll)),
			}
			if got := policy.IsExpired(now, now.Add(tt.expiresIn)); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("zero duration behaves strictly", func(t *testing.T) {
		t.Parallel()

		policy := &expiration.EarlyPolicy{Percentage: 1, Random: rand.New(fixedSource(0))}
		if policy.IsExpired(now, now) {
			t.Error("an entry expiring exactly now must be fresh")
		}
		if !policy.IsExpired(now, now.Add(-time.Nanosecond)) {
			t.Error("an entry expired before now must be expired")
		}
	})

	t.Run("default random source", func(t *testing.T) {
		t.Parallel()

		policy := &expiration.EarlyPolicy{Duration: 10 * time.Minute, Percentage: 1}
		if !policy.IsExpired(now, now.Add(time.Minute)) {
			t.Error("with full percentage the early window always applies")
		}
	})
}
