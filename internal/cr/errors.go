package cr

import "errors"

var (
	// ErrWildcard is returned by operations that need every field known.
	ErrWildcard = errors.New("operation requires a fully specified date")

	// ErrUnreachable is returned for a tzolkin/haab pair that never
	// coincides within a Calendar Round.
	ErrUnreachable = errors.New("tzolkin and haab positions never coincide")

	// ErrCoefficient is returned for a coefficient outside its cycle's range.
	ErrCoefficient = errors.New("coefficient out of range")

	// ErrName is returned for a day or month ordinal outside its table.
	ErrName = errors.New("name out of range")

	// ErrSyntax is returned when a date string cannot be read.
	ErrSyntax = errors.New("malformed calendar round")
)
