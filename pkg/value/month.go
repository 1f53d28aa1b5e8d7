package value

import (
	"strconv"
	"strings"
	"time"
)

// DefaultMonthLayouts are tried in order by MonthCodec.
var DefaultMonthLayouts = []string{
	"2006-01",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	"200601",
}

// MonthNames is a localisable table of month names.
type MonthNames struct {
	Long  [12]string
	Short [12]string
}

// EnglishMonthNames is the default name table.
var EnglishMonthNames = MonthNames{
	Long: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	Short: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// Month is a month of a specific year.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf extracts the month of t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// AddMonths shifts by n months.
func (m Month) AddMonths(n int) Month {
	total := m.Year*12 + int(m.Month-1) + n
	year := total / 12
	idx := total % 12
	if idx < 0 {
		idx += 12
		year--
	}
	return Month{Year: year, Month: time.Month(idx + 1)}
}

// Compare returns -1, 0 or +1.
func (m Month) Compare(o Month) int {
	if m.Year != o.Year {
		return cmpInt(m.Year, o.Year)
	}
	return cmpInt(int(m.Month), int(o.Month))
}

// FirstDay returns the first calendar day of the month.
func (m Month) FirstDay() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// MonthCodec parses year+month text.
type MonthCodec struct {
	Layouts []string
}

func (c MonthCodec) layouts() []string {
	if len(c.Layouts) == 0 {
		return DefaultMonthLayouts
	}
	return c.Layouts
}

// Parse implements Codec.
func (c MonthCodec) Parse(text string) Value[Month] {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty[Month]()
	}
	parsed, ok := parseLayouts(trimmed, c.layouts())
	if !ok {
		return Unresolved[Month]()
	}
	return Of(MonthOf(parsed))
}

// Format implements Codec.
func (c MonthCodec) Format(v Value[Month]) string {
	m, ok := v.Get()
	if !ok {
		return ""
	}
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(c.layouts()[0])
}

// CalendarMonth is a month of the year with no year attached.
type CalendarMonth time.Month

// Valid reports whether the month is January..December.
func (m CalendarMonth) Valid() bool {
	return m >= CalendarMonth(time.January) && m <= CalendarMonth(time.December)
}

// Add shifts by n months, wrapping around the year.
func (m CalendarMonth) Add(n int) CalendarMonth {
	idx := (int(m) - 1 + n) % 12
	if idx < 0 {
		idx += 12
	}
	return CalendarMonth(idx + 1)
}

func (m CalendarMonth) String() string {
	return time.Month(m).String()
}

// CalendarMonthCodec parses month names (long, short, or an unambiguous
// prefix of at least three letters) and month numbers 1-12.
type CalendarMonthCodec struct {
	Names *MonthNames
}

func (c CalendarMonthCodec) names() MonthNames {
	if c.Names == nil {
		return EnglishMonthNames
	}
	return *c.Names
}

// Parse implements Codec.
func (c CalendarMonthCodec) Parse(text string) Value[CalendarMonth] {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty[CalendarMonth]()
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		m := CalendarMonth(n)
		if !m.Valid() {
			return Unresolved[CalendarMonth]()
		}
		return Of(m)
	}

	names := c.names()
	for i := range 12 {
		if strings.EqualFold(trimmed, names.Long[i]) || strings.EqualFold(trimmed, names.Short[i]) {
			return Of(CalendarMonth(i + 1))
		}
	}
	if len([]rune(trimmed)) < 3 {
		return Unresolved[CalendarMonth]()
	}
	lower := strings.ToLower(trimmed)
	match := 0
	for i := range 12 {
		if strings.HasPrefix(strings.ToLower(names.Long[i]), lower) {
			if match != 0 {
				return Unresolved[CalendarMonth]()
			}
			match = i + 1
		}
	}
	if match == 0 {
		return Unresolved[CalendarMonth]()
	}
	return Of(CalendarMonth(match))
}

// Format implements Codec.
func (c CalendarMonthCodec) Format(v Value[CalendarMonth]) string {
	m, ok := v.Get()
	if !ok || !m.Valid() {
		return ""
	}
	return c.names().Long[m-1]
}
