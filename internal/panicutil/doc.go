// Package panicutil converts panics of user supplied functions into errors.
package panicutil
