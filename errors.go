package slotcache

import "errors"

var (
	// ErrCacheEmpty is returned by Get when the slot holds no fresh entry and no regenerator is configured.
	ErrCacheEmpty = errors.New("cache is empty")

	// ErrRegeneratorContract is returned when a regenerator returns a nil entry without an error.
	ErrRegeneratorContract = errors.New("regenerator returned no entry")

	// ErrInvalidTimestamp is returned when an entry is built from a request time that is not in UTC.
	ErrInvalidTimestamp = errors.New("request time must be in UTC")
)
