package slotcache

import (
	"fmt"

	"github.com/goccy/go-reflect"
)

// ValueCloner copies the cached value for Cache.GetCopy.
// The slot keeps sharing one value between every reader, so a caller that wants to
// modify what it got must work on a copy made by CloneValue.
type ValueCloner[T ValueConstraint] interface {
	CloneValue(T) T
}

// ValueClonerFunc adapts a function to ValueCloner.
type ValueClonerFunc[T ValueConstraint] func(v T) T

// CloneValue calls f(v).
func (f ValueClonerFunc[T]) CloneValue(v T) T {
	return f(v)
}

// NopValueCloner hands out the cached value itself.
// Use it for values that are never modified after they are cached.
type NopValueCloner[T ValueConstraint] struct{}

// CloneValue returns v.
func (NopValueCloner[T]) CloneValue(v T) T {
	return v
}

// DefaultValueCloner returns the cloner a Cache uses when none is configured with WithValueCloner.
//
// A value type with a Clone() T or DeepCopy() T method is copied with that method.
// Scalar kinds (booleans, numbers, strings) are copied by assignment.
// Any other type panics, since sharing it would let one reader modify the value seen by the others.
// Cache resolves it on the first GetCopy call, so New never panics.
func DefaultValueCloner[T ValueConstraint]() ValueCloner[T] {
	var zero T
	switch any(zero).(type) {
	case interface{ Clone() T }:
		return ValueClonerFunc[T](func(v T) T {
			return any(v).(interface{ Clone() T }).Clone()
		})
	case interface{ DeepCopy() T }:
		return ValueClonerFunc[T](func(v T) T {
			return any(v).(interface{ DeepCopy() T }).DeepCopy()
		})
	case nil:
		// T is an interface type, its dynamic values are unknown here.
		panic("slotcache: cannot clone values of an interface type without WithValueCloner")
	}

	typ := reflect.TypeOf(zero)
	if isScalarKind(typ.Kind()) {
		return NopValueCloner[T]{}
	}
	panic(fmt.Sprintf("slotcache: value type %s has neither Clone nor DeepCopy method", typ))
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
