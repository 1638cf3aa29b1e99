package cr

import (
	"fmt"
	"strconv"

	"github.com/tartampluch/go-calendar-round/internal/names"
	"github.com/tartampluch/go-calendar-round/internal/wildcard"
)

// Tzolkin is a position in the 260-day cycle: a coefficient 1..13 and one
// of the twenty day names. The two advance together but wrap independently.
type Tzolkin struct {
	Coeff wildcard.Value[int]
	Day   wildcard.Value[names.Day]
}

// NewTzolkin builds a tzolkin value. Ranges are not checked; see Validate.
func NewTzolkin(coeff wildcard.Value[int], day wildcard.Value[names.Day]) Tzolkin {
	return Tzolkin{Coeff: coeff, Day: day}
}

// Next returns the following day. A wildcard field stays a wildcard while
// the known field still advances.
func (t Tzolkin) Next() Tzolkin {
	return Tzolkin{
		Coeff: wildcard.Map(t.Coeff, func(c int) int { return c%names.CoeffCount + 1 }),
		Day:   wildcard.Map(t.Day, names.Day.Next),
	}
}

// Shift returns the value n days later, or earlier for negative n.
func (t Tzolkin) Shift(n int) Tzolkin {
	return Tzolkin{
		Coeff: wildcard.Map(t.Coeff, func(c int) int { return names.Mod(c-1+names.Mod(n, names.CoeffCount), names.CoeffCount) + 1 }),
		Day:   wildcard.Map(t.Day, func(d names.Day) names.Day { return d.Add(n) }),
	}
}

// Equal is field by field equality with wildcards compared as values.
func (t Tzolkin) Equal(o Tzolkin) bool {
	return t.Coeff.Equal(o.Coeff) && t.Day.Equal(o.Day)
}

// Match is field by field equality where a wildcard matches anything.
func (t Tzolkin) Match(o Tzolkin) bool {
	return t.Coeff.Match(o.Coeff) && t.Day.Match(o.Day)
}

// IsPartial reports whether either field is a wildcard.
func (t Tzolkin) IsPartial() bool {
	return t.Coeff.IsWildcard() || t.Day.IsWildcard()
}

// Position returns the index 0..259 of the value within the cycle, counted
// from 1 Imix.
func (t Tzolkin) Position() (int, error) {
	c, cok := t.Coeff.Get()
	d, dok := t.Day.Get()
	if !cok || !dok {
		return 0, fmt.Errorf("tzolkin %v: %w", t, ErrWildcard)
	}
	// 40 is 1 mod 13 and 0 mod 20; 221 is 0 mod 13 and 1 mod 20.
	return names.Mod(40*(c-1)+221*int(d), names.TzolkinLength), nil
}

// Validate checks the known fields against their ranges.
func (t Tzolkin) Validate() error {
	if c, ok := t.Coeff.Get(); ok && (c < 1 || c > names.CoeffCount) {
		return fmt.Errorf("tzolkin coefficient %d: %w", c, ErrCoefficient)
	}
	if d, ok := t.Day.Get(); ok && !d.Valid() {
		return fmt.Errorf("tzolkin day %d: %w", int(d), ErrName)
	}
	return nil
}

// String renders the value as "<coeff> <day>".
func (t Tzolkin) String() string {
	return t.Coeff.Format(strconv.Itoa) + " " + t.Day.Format(names.Day.String)
}
