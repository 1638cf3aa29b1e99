package names

// Day is the ordinal (0..19) of a tzolkin day name, starting at Imix.
type Day int

// The twenty tzolkin day names in cycle order.
const (
	Imix Day = iota
	Ik
	Akbal
	Kan
	Chikchan
	Kimi
	Manik
	Lamat
	Muluk
	Ok
	Chuwen
	Eb
	Ben
	Ix
	Men
	Kib
	Kaban
	Etznab
	Kawak
	Ajaw
)

const (
	// DayCount is the number of tzolkin day names.
	DayCount = 20
	// CoeffCount is the number of tzolkin coefficients (1..13).
	CoeffCount = 13
	// TzolkinLength is the period of the tzolkin cycle.
	TzolkinLength = CoeffCount * DayCount
)

var (
	days = [DayCount]string{
		"Imix", "Ik'", "Ak'bal", "K'an", "Chikchan", "Kimi", "Manik'", "Lamat",
		"Muluk", "Ok", "Chuwen", "Eb", "Ben", "Ix", "Men", "K'ib", "Kaban",
		"Etz'nab", "Kawak", "Ajaw",
	}

	colonialDays = [DayCount]string{
		"Imix", "Ik", "Akbal", "Kan", "Chicchan", "Cimi", "Manik", "Lamat",
		"Muluc", "Oc", "Chuen", "Eb", "Ben", "Ix", "Men", "Cib", "Caban",
		"Etznab", "Cauac", "Ahau",
	}

	dayLookup = lookup{}
)

func init() {
	for i := range DayCount {
		dayLookup.add(i, days[i], colonialDays[i])
	}
}

// Days returns the day names in cycle order.
func Days() []Day {
	out := make([]Day, DayCount)
	for i := range out {
		out[i] = Day(i)
	}
	return out
}

// ParseDay returns the day named by s.
func ParseDay(s string) (Day, error) {
	o, err := dayLookup.find("tzolkin day", s)
	return Day(o), err
}

// Valid reports whether d is one of the twenty day names.
func (d Day) Valid() bool {
	return d >= 0 && d < DayCount
}

// Add returns the day n positions later in the cycle; n may be negative.
func (d Day) Add(n int) Day {
	return Day(Mod(int(d)+Mod(n, DayCount), DayCount))
}

// Next returns the following day name, wrapping Ajaw to Imix.
func (d Day) Next() Day {
	return d.Add(1)
}

// String returns the modern orthography of the day name.
func (d Day) String() string {
	if !d.Valid() {
		return "Day(?)"
	}
	return days[d]
}

// Colonial returns the colonial Yucatec spelling of the day name.
func (d Day) Colonial() string {
	if !d.Valid() {
		return "Day(?)"
	}
	return colonialDays[d]
}

// Key returns the ASCII identifier used for translation lookups.
func (d Day) Key() string {
	return fold(d.String())
}

// Mod is the non-truncating modulus: the result is always in [0, m).
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
