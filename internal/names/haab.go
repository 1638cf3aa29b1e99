package names

// Month is the ordinal (0..18) of a haab month, starting at Pop. Wayeb,
// the five day epagomenal period, is the final month.
type Month int

// The haab months in cycle order.
const (
	Pop Month = iota
	Wo
	Sip
	Sotz
	Sek
	Xul
	Yaxkin
	Mol
	Chen
	Yax
	Sak
	Keh
	Mak
	Kankin
	Muwan
	Pax
	Kayab
	Kumku
	Wayeb
)

const (
	// MonthCount is the number of haab months including Wayeb.
	MonthCount = 19
	// FirstCoeff is the coefficient of the first day of a month. The
	// "seating" of a month is day 0.
	FirstCoeff = 0
	// monthWidth is the number of days in an ordinary month.
	monthWidth = 20
	// wayebWidth is the number of days in Wayeb.
	wayebWidth = 5
)

// HaabLength is the period of the haab cycle, the sum of all month widths.
var HaabLength int

var (
	months = [MonthCount]string{
		"Pop", "Wo'", "Sip", "Sotz'", "Sek", "Xul", "Yaxk'in", "Mol", "Ch'en",
		"Yax", "Sak'", "Keh", "Mak", "K'ank'in", "Muwan", "Pax", "K'ayab",
		"Kumk'u", "Wayeb",
	}

	colonialMonths = [MonthCount]string{
		"Pop", "Uo", "Zip", "Zotz", "Tzec", "Xul", "Yaxkin", "Mol", "Chen",
		"Yax", "Zac", "Ceh", "Mac", "Kankin", "Muan", "Pax", "Kayab",
		"Cumku", "Uayeb",
	}

	monthWidths  [MonthCount]int
	monthOffsets [MonthCount]int // first position of each month in the haab

	monthLookup = lookup{}
)

func init() {
	for i := range MonthCount {
		monthWidths[i] = monthWidth
		monthLookup.add(i, months[i], colonialMonths[i])
	}
	monthWidths[Wayeb] = wayebWidth
	monthLookup.add(int(Wayeb), "Uayeyab")

	for i := 1; i < MonthCount; i++ {
		monthOffsets[i] = monthOffsets[i-1] + monthWidths[i-1]
	}
	HaabLength = monthOffsets[MonthCount-1] + monthWidths[MonthCount-1]
}

// Months returns the haab months in cycle order.
func Months() []Month {
	out := make([]Month, MonthCount)
	for i := range out {
		out[i] = Month(i)
	}
	return out
}

// ParseMonth returns the month named by s.
func ParseMonth(s string) (Month, error) {
	o, err := monthLookup.find("haab month", s)
	return Month(o), err
}

// Valid reports whether m is one of the nineteen haab months.
func (m Month) Valid() bool {
	return m >= 0 && m < MonthCount
}

// Width returns the number of days in the month, or 0 for an invalid month.
func (m Month) Width() int {
	if !m.Valid() {
		return 0
	}
	return monthWidths[m]
}

// LastCoeff returns the highest coefficient the month allows.
func (m Month) LastCoeff() int {
	return FirstCoeff + m.Width() - 1
}

// Offset returns the position of the month's first day within the haab, or
// -1 for an invalid month.
func (m Month) Offset() int {
	if !m.Valid() {
		return -1
	}
	return monthOffsets[m]
}

// Next returns the following month, wrapping Wayeb to Pop.
func (m Month) Next() Month {
	return Month(Mod(int(m)+1, MonthCount))
}

// String returns the modern orthography of the month name.
func (m Month) String() string {
	if !m.Valid() {
		return "Month(?)"
	}
	return months[m]
}

// Colonial returns the colonial Yucatec spelling of the month name.
func (m Month) Colonial() string {
	if !m.Valid() {
		return "Month(?)"
	}
	return colonialMonths[m]
}

// Key returns the ASCII identifier used for translation lookups.
func (m Month) Key() string {
	return fold(m.String())
}

// Locate decomposes a haab position into its month and coefficient. pos is
// reduced modulo HaabLength first.
func Locate(pos int) (Month, int) {
	pos = Mod(pos, HaabLength)
	m := Month(MonthCount - 1)
	for i := 1; i < MonthCount; i++ {
		if pos < monthOffsets[i] {
			m = Month(i - 1)
			break
		}
	}
	return m, pos - monthOffsets[m] + FirstCoeff
}
