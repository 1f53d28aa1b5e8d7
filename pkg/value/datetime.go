package value

import (
	"strings"
	"time"
)

// Combine builds the instant for date d at wall-clock t in loc (UTC when nil).
func Combine(d Date, t TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), t.Second(), t.Millisecond()*int(time.Millisecond), loc)
}

// Split returns the calendar date and wall-clock time of an instant in its
// own location.
func Split(t time.Time) (Date, TimeOfDay) {
	return DateOf(t), TimeOfDayOf(t)
}

// DatetimeCodec parses "date time" text in a single buffer by trying every
// split point between the date and the time part.
type DatetimeCodec struct {
	Date     DateCodec
	Time     TimeCodec
	Location *time.Location
}

func (c DatetimeCodec) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Parse implements Codec.
func (c DatetimeCodec) Parse(text string) Value[time.Time] {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Empty[time.Time]()
	}
	for i := len(fields) - 1; i >= 1; i-- {
		d := c.Date.Parse(strings.Join(fields[:i], " "))
		t := c.Time.Parse(strings.Join(fields[i:], " "))
		dv, dok := d.Get()
		tv, tok := t.Get()
		if dok && tok {
			return Of(Combine(dv, tv, c.location()))
		}
	}
	return Unresolved[time.Time]()
}

// Format implements Codec.
func (c DatetimeCodec) Format(v Value[time.Time]) string {
	t, ok := v.Get()
	if !ok {
		return ""
	}
	d, tod := Split(t.In(c.location()))
	return c.Date.Format(Of(d)) + " " + c.Time.Format(Of(tod))
}

// EqualInstant compares two instants ignoring their locations.
func EqualInstant(a, b time.Time) bool {
	return a.Equal(b)
}
