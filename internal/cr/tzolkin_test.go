package cr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar-round/internal/cr"
	"github.com/tartampluch/go-calendar-round/internal/names"
	"github.com/tartampluch/go-calendar-round/internal/wildcard"
)

func tz(c int, d names.Day) cr.Tzolkin {
	return cr.NewTzolkin(wildcard.Of(c), wildcard.Of(d))
}

func allTzolkin() []cr.Tzolkin {
	var out []cr.Tzolkin
	for c := 1; c <= names.CoeffCount; c++ {
		for _, d := range names.Days() {
			out = append(out, tz(c, d))
		}
	}
	return out
}

func TestTzolkin_Next(t *testing.T) {
	tests := []struct {
		name string
		in   cr.Tzolkin
		want cr.Tzolkin
	}{
		{"ordinary", tz(8, names.Ajaw), tz(9, names.Imix)},
		{"coefficient wraps", tz(13, names.Kan), tz(1, names.Chikchan)},
		{"both wrap", tz(13, names.Ajaw), tz(1, names.Imix)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.in.Next()), "got %v, want %v", tt.in.Next(), tt.want)
		})
	}
}

func TestTzolkin_CycleClosure(t *testing.T) {
	for _, start := range allTzolkin() {
		cur := start
		for i := 1; i < names.TzolkinLength; i++ {
			cur = cur.Next()
			require.False(t, cur.Equal(start), "%v recurs after only %d days", start, i)
		}
		assert.True(t, cur.Next().Equal(start), "%v must recur after 260 days", start)
	}
}

func TestTzolkin_ShiftMatchesNext(t *testing.T) {
	for _, v := range allTzolkin() {
		assert.True(t, v.Shift(1).Equal(v.Next()), "Shift(1) of %v", v)
	}

	v := tz(4, names.Ajaw)
	cur := v
	for i := range 300 {
		assert.True(t, v.Shift(i).Equal(cur), "Shift(%d) of %v", i, v)
		cur = cur.Next()
	}
}

func TestTzolkin_ShiftNegative(t *testing.T) {
	assert.True(t, tz(13, names.Ajaw).Equal(tz(1, names.Imix).Shift(-1)))
	assert.True(t, tz(1, names.Imix).Equal(tz(1, names.Imix).Shift(-260)))

	for _, n := range []int{-1, -13, -20, -259, -261, -100000, 7, 260, 99999} {
		for _, v := range allTzolkin() {
			require.True(t, v.Equal(v.Shift(n).Shift(-n)), "shift %d and back on %v", n, v)
		}
	}
}

func TestTzolkin_Wildcards(t *testing.T) {
	partial := cr.NewTzolkin(wildcard.Of(8), wildcard.Any[names.Day]())
	assert.True(t, partial.IsPartial())

	next := partial.Next()
	c, ok := next.Coeff.Get()
	assert.True(t, ok, "a known coefficient keeps advancing")
	assert.Equal(t, 9, c)
	assert.True(t, next.Day.IsWildcard())

	assert.Equal(t, "8 *", partial.String())
	assert.True(t, partial.Match(tz(8, names.Ajaw)))
	assert.False(t, partial.Equal(tz(8, names.Ajaw)))
	assert.False(t, partial.Match(tz(9, names.Ajaw)))

	_, err := partial.Position()
	assert.ErrorIs(t, err, cr.ErrWildcard)
}

func TestTzolkin_Position(t *testing.T) {
	seen := map[int]bool{}
	cur := tz(1, names.Imix)
	for i := range names.TzolkinLength {
		p, err := cur.Position()
		require.NoError(t, err)
		assert.Equal(t, i, p, "position of %v", cur)
		seen[p] = true
		cur = cur.Next()
	}
	assert.Len(t, seen, names.TzolkinLength)
}

func TestTzolkin_Validate(t *testing.T) {
	assert.NoError(t, tz(13, names.Ajaw).Validate())
	assert.ErrorIs(t, tz(0, names.Ajaw).Validate(), cr.ErrCoefficient)
	assert.ErrorIs(t, tz(14, names.Imix).Validate(), cr.ErrCoefficient)
	assert.ErrorIs(t, tz(1, names.Day(20)).Validate(), cr.ErrName)
	assert.NoError(t, cr.Tzolkin{}.Validate(), "wildcards are always in range")
}
