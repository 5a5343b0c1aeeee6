// Package slotcache provides a thread-safe cache holding a single value.
//
// The cache keeps at most one CacheEntry: a value stamped with the time it
// was requested and an optional max age. Expiration is checked lazily on
// access; nothing runs in the background.
//
// When the entry is missing or expired, Get regenerates it with the
// configured Regenerator. Concurrent regenerations race to publish their
// results with a compare-and-swap: exactly one result becomes current, the
// losing results are passed to the eviction callback and their callers
// receive the winner instead. Direct mutation with Set, SetEntry and Replace
// may happen at any time, including while a regeneration is in flight.
//
// Usage:
//
//	cache := slotcache.New(
//		slotcache.WithRegenerator[*Config](regenerator.Loader[*Config](loadConfig)),
//		slotcache.WithDefaultMaxAge[*Config](slotcache.MaxAgeOf(time.Minute)),
//	)
//	cfg, err := cache.Get(ctx, slotcache.NoMaxAge())
package slotcache
