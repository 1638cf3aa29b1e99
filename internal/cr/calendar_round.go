// Package cr implements Calendar Round arithmetic: the pairing of a
// 260-day tzolkin position with a 365-day haab position, which recombine
// every 18,980 days.
//
// Any field may be a wildcard. Equal compares wildcards as ordinary values,
// Match lets a wildcard stand for any value, which is what partial date
// searches are built on. Every value is immutable; all operations return
// new values and are safe for concurrent use.
package cr

import (
	"fmt"

	"github.com/tartampluch/go-calendar-round/internal/names"
	"github.com/tartampluch/go-calendar-round/internal/wildcard"
)

// Length is the Calendar Round period, lcm(260, 365).
const Length = 18980

// Epoch is day 0 of the cycle for Position and DaysUntil.
var Epoch = Of(4, names.Ajaw, 8, names.Kumku)

// CalendarRound is a compound tzolkin and haab date.
type CalendarRound struct {
	Tzolkin Tzolkin
	Haab    Haab
}

// New builds a Calendar Round from four slots, any of which may be a
// wildcard. Ranges and reachability are not checked; see Validate.
func New(tzolkinCoeff wildcard.Value[int], tzolkinDay wildcard.Value[names.Day],
	haabCoeff wildcard.Value[int], haabMonth wildcard.Value[names.Month]) CalendarRound {
	return CalendarRound{
		Tzolkin: NewTzolkin(tzolkinCoeff, tzolkinDay),
		Haab:    NewHaab(haabCoeff, haabMonth),
	}
}

// Of builds a fully specified Calendar Round.
func Of(tzolkinCoeff int, tzolkinDay names.Day, haabCoeff int, haabMonth names.Month) CalendarRound {
	return New(wildcard.Of(tzolkinCoeff), wildcard.Of(tzolkinDay), wildcard.Of(haabCoeff), wildcard.Of(haabMonth))
}

// Next advances both cycles by one day.
func (c CalendarRound) Next() CalendarRound {
	return CalendarRound{Tzolkin: c.Tzolkin.Next(), Haab: c.Haab.Next()}
}

// Shift moves both cycles by n days, n may be negative.
func (c CalendarRound) Shift(n int) CalendarRound {
	return CalendarRound{Tzolkin: c.Tzolkin.Shift(n), Haab: c.Haab.Shift(n)}
}

// Equal reports strict field by field equality, wildcards included.
func (c CalendarRound) Equal(o CalendarRound) bool {
	return c.Tzolkin.Equal(o.Tzolkin) && c.Haab.Equal(o.Haab)
}

// Match reports whether every field is equal or a wildcard on either side.
func (c CalendarRound) Match(o CalendarRound) bool {
	return c.Tzolkin.Match(o.Tzolkin) && c.Haab.Match(o.Haab)
}

// IsPartial reports whether any of the four fields is a wildcard.
func (c CalendarRound) IsPartial() bool {
	return c.Tzolkin.IsPartial() || c.Haab.IsPartial()
}

// Clone returns an independent copy. CalendarRound is a value type so this
// is a plain copy.
func (c CalendarRound) Clone() CalendarRound {
	return c
}

// String renders "<tzolkin> <haab>", e.g. "8 Ajaw 4 Kumk'u".
func (c CalendarRound) String() string {
	return c.Tzolkin.String() + " " + c.Haab.String()
}

// Validate checks field ranges and, when the tzolkin day and full haab are
// known, that the pair occurs somewhere in the Calendar Round. Coefficients
// play no part in reachability since 13 and 365 are coprime.
func (c CalendarRound) Validate() error {
	if err := c.Tzolkin.Validate(); err != nil {
		return err
	}
	if err := c.Haab.Validate(); err != nil {
		return err
	}
	d, ok := c.Tzolkin.Day.Get()
	if !ok || c.Haab.IsPartial() {
		return nil
	}
	hp, _ := c.Haab.Position()
	if !reachable(d, hp) {
		return fmt.Errorf("%v: %w", c, ErrUnreachable)
	}
	return nil
}

var (
	// gcd(260, 365); positions must agree modulo this for a date to exist.
	cycleGCD = gcd(names.TzolkinLength, names.HaabLength)

	epochTzolkin, _ = Epoch.Tzolkin.Position()
	epochHaab, _    = Epoch.Haab.Position()
)

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func reachable(d names.Day, haabPos int) bool {
	epochDay, _ := Epoch.Tzolkin.Day.Get()
	return names.Mod(int(d)-int(epochDay)-(haabPos-epochHaab), cycleGCD) == 0
}

// Position returns the day 0..18979 of a full date counted from Epoch.
func (c CalendarRound) Position() (int, error) {
	tp, err := c.Tzolkin.Position()
	if err != nil {
		return 0, err
	}
	hp, err := c.Haab.Position()
	if err != nil {
		return 0, err
	}
	dt := names.Mod(tp-epochTzolkin, names.TzolkinLength)
	dh := names.Mod(hp-epochHaab, names.HaabLength)
	for d := dt; d < Length; d += names.TzolkinLength {
		if d%names.HaabLength == dh {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%v: %w", c, ErrUnreachable)
}

// DaysUntil returns how many days forward o lies from c, in [0, Length).
func (c CalendarRound) DaysUntil(o CalendarRound) (int, error) {
	from, err := c.Position()
	if err != nil {
		return 0, err
	}
	to, err := o.Position()
	if err != nil {
		return 0, err
	}
	return names.Mod(to-from, Length), nil
}
