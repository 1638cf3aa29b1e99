package cr

import (
	"fmt"
	"strconv"

	"github.com/tartampluch/go-calendar-round/internal/names"
	"github.com/tartampluch/go-calendar-round/internal/wildcard"
)

// Haab is a position in the 365-day cycle: a coefficient within a month.
// The valid coefficients depend on the month, see names.Month.Width.
type Haab struct {
	Coeff wildcard.Value[int]
	Month wildcard.Value[names.Month]
}

// NewHaab builds a haab value. Ranges are not checked; see Validate.
func NewHaab(coeff wildcard.Value[int], month wildcard.Value[names.Month]) Haab {
	return Haab{Coeff: coeff, Month: month}
}

// Next returns the following day, rolling into the next month after the
// current month's last coefficient. The coefficient and month are coupled,
// so a haab with any wildcard field, or an out of range month, advances to a
// fully wildcard haab.
func (h Haab) Next() Haab {
	c, cok := h.Coeff.Get()
	m, mok := h.Month.Get()
	if !cok || !mok || !m.Valid() {
		return Haab{}
	}
	if c < m.LastCoeff() {
		return Haab{Coeff: wildcard.Of(c + 1), Month: wildcard.Of(m)}
	}
	return Haab{Coeff: wildcard.Of(names.FirstCoeff), Month: wildcard.Of(m.Next())}
}

// Shift returns the value n days later, or earlier for negative n. The
// same wildcard rule as Next applies.
func (h Haab) Shift(n int) Haab {
	pos, err := h.Position()
	if err != nil {
		return Haab{}
	}
	m, c := names.Locate(pos + names.Mod(n, names.HaabLength))
	return Haab{Coeff: wildcard.Of(c), Month: wildcard.Of(m)}
}

// Equal is field by field equality with wildcards compared as values.
func (h Haab) Equal(o Haab) bool {
	return h.Coeff.Equal(o.Coeff) && h.Month.Equal(o.Month)
}

// Match is field by field equality where a wildcard matches anything.
func (h Haab) Match(o Haab) bool {
	return h.Coeff.Match(o.Coeff) && h.Month.Match(o.Month)
}

// IsPartial reports whether either field is a wildcard.
func (h Haab) IsPartial() bool {
	return h.Coeff.IsWildcard() || h.Month.IsWildcard()
}

// Position returns the index 0..364 of the value within the cycle, counted
// from 0 Pop.
func (h Haab) Position() (int, error) {
	c, cok := h.Coeff.Get()
	m, mok := h.Month.Get()
	if !cok || !mok {
		return 0, fmt.Errorf("haab %v: %w", h, ErrWildcard)
	}
	if !m.Valid() {
		return 0, fmt.Errorf("haab month %d: %w", int(m), ErrName)
	}
	return names.Mod(m.Offset()+c-names.FirstCoeff, names.HaabLength), nil
}

// Validate checks the known fields against their ranges. Without a known
// month the coefficient is checked against the widest month.
func (h Haab) Validate() error {
	m, mok := h.Month.Get()
	if mok && !m.Valid() {
		return fmt.Errorf("haab month %d: %w", int(m), ErrName)
	}
	c, cok := h.Coeff.Get()
	if !cok {
		return nil
	}
	last := names.Pop.LastCoeff()
	if mok {
		last = m.LastCoeff()
	}
	if c < names.FirstCoeff || c > last {
		return fmt.Errorf("haab coefficient %d for %v: %w", c, h.Month.Format(names.Month.String), ErrCoefficient)
	}
	return nil
}

// String renders the value as "<coeff> <month>".
func (h Haab) String() string {
	return h.Coeff.Format(strconv.Itoa) + " " + h.Month.Format(names.Month.String)
}
