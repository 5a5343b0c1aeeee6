// Package expiration provides policies for deciding whether a cache entry has expired.
//
// A policy only compares the current time with an entry's expiration time.
// Entries without a max age never reach a policy: they never expire.
// The cache uses StrictPolicy unless another policy is configured.
package expiration
