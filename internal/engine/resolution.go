package engine

import "github.com/tartampluch/go-calendar-round/internal/cr"

// Resolution is the outcome for one pattern line.
type Resolution struct {
	// Line is the 1-based line number in the source.
	Line int

	// Pattern is the parsed, possibly partial, date.
	Pattern cr.CalendarRound

	// Partial mirrors Pattern.IsPartial().
	Partial bool

	// Invalid holds the validation error for out of range or unreachable
	// patterns. Such patterns have no matches.
	Invalid error

	// Matches are the first dates on or after the reference date that
	// match Pattern, in order, capped by the configured limit.
	Matches []cr.CalendarRound

	// Total is the number of matching dates in a whole Calendar Round.
	Total int
}

// Report is the outcome of a resolution run.
type Report struct {
	Resolutions []Resolution

	// Lines is the number of lines read, comments and blanks included.
	Lines int

	// Skipped counts lines that could not be parsed.
	Skipped int

	// Problems aggregates the parse errors of skipped lines, nil if none.
	Problems error
}
