package value

import (
	"strings"
	"time"
)

// DefaultDateLayouts are the input patterns DateCodec tries when none are
// configured. The first entry is also the display layout.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"January 2 2006",
	"20060102",
}

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a normalised Date (month 13 rolls into the next year, day 0
// into the previous month, as time.Date does).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf extracts the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight of the date in loc (UTC when nil).
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays shifts the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	return d.Time(time.UTC).Format("2006-01-02")
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b Date) int {
	return int(b.Time(time.UTC).Sub(a.Time(time.UTC)).Hours() / 24)
}

// DateCodec parses calendar dates using ordered layouts.
type DateCodec struct {
	Layouts []string
}

func (c DateCodec) layouts() []string {
	if len(c.Layouts) == 0 {
		return DefaultDateLayouts
	}
	return c.Layouts
}

// Parse implements Codec.
func (c DateCodec) Parse(text string) Value[Date] {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty[Date]()
	}
	parsed, ok := parseLayouts(trimmed, c.layouts())
	if !ok {
		return Unresolved[Date]()
	}
	return Of(DateOf(parsed))
}

// Format implements Codec.
func (c DateCodec) Format(v Value[Date]) string {
	d, ok := v.Get()
	if !ok {
		return ""
	}
	return d.Time(time.UTC).Format(c.layouts()[0])
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
