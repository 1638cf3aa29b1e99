// Package names holds the fixed tzolkin day and haab month tables and the
// lookup of their names.
//
// Names are stored in the modern orthography (Ajaw, Kumk'u). Lookups are
// tolerant of case, typographic apostrophes, diacritics and the colonial
// Yucatec spellings still common in the literature (Ahau, Cumku, Uayeb).
package names

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownName is returned when a string names no day or month.
var ErrUnknownName = errors.New("unknown name")

// apostrophes covers the glottal stop marks found in transcriptions.
const apostrophes = "'’‘`´ʼ"

// fold reduces a name to the key used for lookups: decomposed, stripped of
// combining marks and apostrophes, then case folded. A new transformer is
// built per call since transformers carry state.
func fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return strings.ContainsRune(apostrophes, r)
		})),
		cases.Fold(),
	)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

type lookup map[string]int

func (l lookup) add(ordinal int, spellings ...string) {
	for _, s := range spellings {
		l[fold(s)] = ordinal
	}
}

func (l lookup) find(kind, s string) (int, error) {
	if o, ok := l[fold(s)]; ok {
		return o, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownName, kind, s)
}
