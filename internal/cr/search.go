package cr

import (
	"context"
	"fmt"
	"iter"

	"github.com/tartampluch/go-calendar-round/internal/names"
)

// Walk yields from and the following days, one full Calendar Round in all.
func Walk(from CalendarRound) iter.Seq[CalendarRound] {
	return func(yield func(CalendarRound) bool) {
		c := from
		for range Length {
			if !yield(c) {
				return
			}
			c = c.Next()
		}
	}
}

// Search returns the dates, starting at from inclusive and moving forward
// through one Calendar Round, that match pattern. At most limit dates are
// returned; limit <= 0 returns all of them. from must be fully specified.
func Search(ctx context.Context, from, pattern CalendarRound, limit int) ([]CalendarRound, error) {
	if from.IsPartial() {
		return nil, fmt.Errorf("search start %v: %w", from, ErrWildcard)
	}
	var out []CalendarRound
	i := 0
	for c := range Walk(from) {
		if i%names.TzolkinLength == 0 {
			if err := ctx.Err(); err != nil {
				return out, err
			}
		}
		i++
		if !pattern.Match(c) {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Expand returns every date of the Calendar Round that matches pattern,
// in cycle order from Epoch.
func Expand(ctx context.Context, pattern CalendarRound) ([]CalendarRound, error) {
	return Search(ctx, Epoch, pattern, 0)
}
