// Package regenerator provides adapters for implementing slotcache.Regenerator.
//
// Func turns a plain function into a Regenerator, Loader builds fresh entries
// from a value loading function, KeepFresh skips regeneration while the
// previous entry is still fresh, and Lint checks that a Regenerator follows the contract.
package regenerator
