package cr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar-round/internal/cr"
	"github.com/tartampluch/go-calendar-round/internal/names"
	"github.com/tartampluch/go-calendar-round/internal/wildcard"
)

func hb(c int, m names.Month) cr.Haab {
	return cr.NewHaab(wildcard.Of(c), wildcard.Of(m))
}

func allHaab() []cr.Haab {
	var out []cr.Haab
	for _, m := range names.Months() {
		for c := names.FirstCoeff; c <= m.LastCoeff(); c++ {
			out = append(out, hb(c, m))
		}
	}
	return out
}

func TestHaab_AllPositions(t *testing.T) {
	assert.Len(t, allHaab(), names.HaabLength)
}

func TestHaab_Next(t *testing.T) {
	tests := []struct {
		name string
		in   cr.Haab
		want cr.Haab
	}{
		{"within month", hb(4, names.Kumku), hb(5, names.Kumku)},
		{"month rollover", hb(19, names.Pop), hb(0, names.Wo)},
		{"into Wayeb", hb(19, names.Kumku), hb(0, names.Wayeb)},
		{"within Wayeb", hb(3, names.Wayeb), hb(4, names.Wayeb)},
		{"Wayeb rolls early", hb(4, names.Wayeb), hb(0, names.Pop)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.in.Next()), "got %v, want %v", tt.in.Next(), tt.want)
		})
	}
}

func TestHaab_CycleClosure(t *testing.T) {
	for _, start := range allHaab() {
		cur := start
		for i := 1; i < names.HaabLength; i++ {
			cur = cur.Next()
			require.False(t, cur.Equal(start), "%v recurs after only %d days", start, i)
		}
		assert.True(t, cur.Next().Equal(start), "%v must recur after 365 days", start)
	}
}

func TestHaab_ShiftMatchesNext(t *testing.T) {
	for _, v := range allHaab() {
		require.True(t, v.Shift(1).Equal(v.Next()), "Shift(1) of %v", v)
	}

	v := hb(8, names.Kumku)
	cur := v
	for i := range 400 {
		require.True(t, v.Shift(i).Equal(cur), "Shift(%d) of %v: got %v want %v", i, v, v.Shift(i), cur)
		cur = cur.Next()
	}
}

func TestHaab_ShiftNegative(t *testing.T) {
	assert.True(t, hb(4, names.Wayeb).Equal(hb(0, names.Pop).Shift(-1)))
	assert.True(t, hb(19, names.Kumku).Equal(hb(0, names.Wayeb).Shift(-1)))

	for _, n := range []int{-1, -5, -20, -364, -366, -100000, 3, 365, 99999} {
		for _, v := range allHaab() {
			require.True(t, v.Equal(v.Shift(n).Shift(-n)), "shift %d and back on %v", n, v)
		}
	}
}

func TestHaab_Wildcards(t *testing.T) {
	tests := []struct {
		name string
		in   cr.Haab
	}{
		{"coefficient unknown", cr.NewHaab(wildcard.Any[int](), wildcard.Of(names.Pop))},
		{"month unknown", cr.NewHaab(wildcard.Of(4), wildcard.Any[names.Month]())},
		{"both unknown", cr.Haab{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.in.IsPartial())
			assert.True(t, tt.in.Next().Equal(cr.Haab{}), "coupled fields advance to a full wildcard")
			assert.True(t, tt.in.Shift(-17).Equal(cr.Haab{}))
			assert.True(t, tt.in.Match(hb(4, names.Pop)))
		})
	}
	assert.Equal(t, "* *", cr.Haab{}.String())
}

func TestHaab_OutOfRangeMonth(t *testing.T) {
	bad := hb(0, names.Month(19))
	assert.NotPanics(t, func() {
		_, err := bad.Position()
		assert.ErrorIs(t, err, cr.ErrName)
		assert.True(t, bad.Next().Equal(cr.Haab{}))
		assert.True(t, bad.Shift(3).Equal(cr.Haab{}))
	})

	round := cr.CalendarRound{Tzolkin: cr.Epoch.Tzolkin, Haab: bad}
	assert.NotPanics(t, func() {
		_, err := round.Position()
		assert.ErrorIs(t, err, cr.ErrName)
	})
}

func TestHaab_Position(t *testing.T) {
	for i, v := range allHaab() {
		p, err := v.Position()
		require.NoError(t, err)
		assert.Equal(t, i, p, "position of %v", v)
	}
}

func TestHaab_Validate(t *testing.T) {
	assert.NoError(t, hb(19, names.Kumku).Validate())
	assert.NoError(t, hb(4, names.Wayeb).Validate())
	assert.ErrorIs(t, hb(5, names.Wayeb).Validate(), cr.ErrCoefficient)
	assert.ErrorIs(t, hb(20, names.Pop).Validate(), cr.ErrCoefficient)
	assert.ErrorIs(t, hb(-1, names.Pop).Validate(), cr.ErrCoefficient)
	assert.ErrorIs(t, hb(0, names.Month(19)).Validate(), cr.ErrName)

	unknownMonth := cr.NewHaab(wildcard.Of(19), wildcard.Any[names.Month]())
	assert.NoError(t, unknownMonth.Validate())
	tooLarge := cr.NewHaab(wildcard.Of(20), wildcard.Any[names.Month]())
	assert.ErrorIs(t, tooLarge.Validate(), cr.ErrCoefficient)
}
