// Package wildcard provides a tagged slot holding either a known value or
// the "unspecified" marker used by partial Calendar Round dates.
package wildcard

import "github.com/tartampluch/go-calendar-round/internal/config"

// Token is the display form of an unknown slot.
const Token = config.WildcardToken

// Value is either a known T or a wildcard. The zero Value is a wildcard.
type Value[T comparable] struct {
	v     T
	known bool
}

// Of returns a known slot holding v.
func Of[T comparable](v T) Value[T] {
	return Value[T]{v: v, known: true}
}

// Any returns an unknown slot.
func Any[T comparable]() Value[T] {
	return Value[T]{}
}

// IsWildcard reports whether the slot is unknown.
func (w Value[T]) IsWildcard() bool {
	return !w.known
}

// Get returns the held value and true, or the zero T and false for a wildcard.
func (w Value[T]) Get() (T, bool) {
	return w.v, w.known
}

// Equal is strict: two wildcards are equal, a wildcard never equals a known value.
func (w Value[T]) Equal(o Value[T]) bool {
	if w.known != o.known {
		return false
	}
	return !w.known || w.v == o.v
}

// Match treats a wildcard on either side as matching anything.
func (w Value[T]) Match(o Value[T]) bool {
	if !w.known || !o.known {
		return true
	}
	return w.v == o.v
}

// Map applies fn to a known value. A wildcard stays a wildcard.
func Map[T, U comparable](w Value[T], fn func(T) U) Value[U] {
	if !w.known {
		return Any[U]()
	}
	return Of(fn(w.v))
}

// Format renders a known value through fn, and a wildcard as Token.
func (w Value[T]) Format(fn func(T) string) string {
	if !w.known {
		return Token
	}
	return fn(w.v)
}
