package slotcache_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karupanerura/slotcache"
	"github.com/karupanerura/slotcache/regenerator"
)

// Config represents a parsed configuration
type Config struct {
	Endpoint string
	Version  int
}

func (c *Config) Clone() *Config {
	return &Config{
		Endpoint: c.Endpoint,
		Version:  c.Version,
	}
}

func ExampleCache_Get() {
	var version int
	cache := slotcache.New(
		slotcache.WithDefaultMaxAge[*Config](slotcache.MaxAgeOf(time.Minute)),
		slotcache.WithEvictionCallback(func(e *slotcache.CacheEntry[*Config]) {
			fmt.Println("Evicted version:", e.Value().Version)
		}),
		slotcache.WithRegenerator[*Config](regenerator.Loader[*Config](func(ctx context.Context) (*Config, error) {
			// Simulate parsing a configuration file
			version++
			return &Config{Endpoint: "https://example.com", Version: version}, nil
		})),
	)

	ctx := context.Background()
	cfg, err := cache.Get(ctx, slotcache.NoMaxAge())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Loaded version:", cfg.Version)

	// Served from the cache
	cfg, _ = cache.Get(ctx, slotcache.NoMaxAge())
	fmt.Println("Cached version:", cfg.Version)

	// A zero max age override forces a regeneration
	time.Sleep(time.Millisecond)
	cfg, _ = cache.Get(ctx, slotcache.MaxAgeOf(0))
	fmt.Println("Reloaded version:", cfg.Version)

	// Output:
	// Loaded version: 1
	// Cached version: 1
	// Evicted version: 1
	// Reloaded version: 2
}

func ExampleCache_Peek() {
	cache := slotcache.New[string]()

	if _, ok := cache.Peek(slotcache.NoMaxAge()); !ok {
		fmt.Println("No value yet")
	}
	if _, err := cache.Get(context.Background(), slotcache.NoMaxAge()); errors.Is(err, slotcache.ErrCacheEmpty) {
		fmt.Println("Get:", err)
	}

	if err := cache.Set("token", slotcache.MaxAgeOf(time.Hour)); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if v, ok := cache.Peek(slotcache.NoMaxAge()); ok {
		fmt.Println("Peeked:", v)
	}

	// Output:
	// No value yet
	// Get: cache is empty
	// Peeked: token
}

func ExampleCache_Replace() {
	cache := slotcache.New(
		slotcache.WithEvictionCallback(func(e *slotcache.CacheEntry[string]) {
			fmt.Println("Evicted:", e.Value())
		}),
	)
	_ = cache.Set("first", slotcache.NoMaxAge())
	_ = cache.Set("second", slotcache.NoMaxAge())

	// Replace hands the displaced entry over to the caller instead of evicting it
	previous := cache.Replace(nil)
	fmt.Println("Replaced:", previous.Value())

	// Output:
	// Evicted: first
	// Replaced: second
}
