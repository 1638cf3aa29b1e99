package cr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-calendar-round/internal/config"
	"github.com/tartampluch/go-calendar-round/internal/names"
	"github.com/tartampluch/go-calendar-round/internal/wildcard"
)

// Parse reads the display form "<coeff> <day> <coeff> <month>", e.g.
// "8 Ajaw 4 Kumk'u". Any token may be "*". Names are looked up leniently,
// see names.ParseDay. Ranges are not checked; see Validate.
func Parse(s string) (CalendarRound, error) {
	fields := strings.Fields(s)
	if len(fields) != config.DateFieldCount {
		return CalendarRound{}, fmt.Errorf("%w: %q: want %d fields, got %d", ErrSyntax, s, config.DateFieldCount, len(fields))
	}
	tc, err := parseCoeff(fields[0])
	if err != nil {
		return CalendarRound{}, err
	}
	td, err := parseName(fields[1], names.ParseDay)
	if err != nil {
		return CalendarRound{}, err
	}
	hc, err := parseCoeff(fields[2])
	if err != nil {
		return CalendarRound{}, err
	}
	hm, err := parseName(fields[3], names.ParseMonth)
	if err != nil {
		return CalendarRound{}, err
	}
	return New(tc, td, hc, hm), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) CalendarRound {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseCoeff(tok string) (wildcard.Value[int], error) {
	if tok == wildcard.Token {
		return wildcard.Any[int](), nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return wildcard.Value[int]{}, fmt.Errorf("%w: coefficient %q", ErrSyntax, tok)
	}
	return wildcard.Of(n), nil
}

func parseName[T comparable](tok string, lookup func(string) (T, error)) (wildcard.Value[T], error) {
	if tok == wildcard.Token {
		return wildcard.Any[T](), nil
	}
	v, err := lookup(tok)
	if err != nil {
		return wildcard.Value[T]{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return wildcard.Of(v), nil
}
