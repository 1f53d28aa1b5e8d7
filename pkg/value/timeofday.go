package value

import (
	"fmt"
	"strings"
	"time"
)

// DayMillis is the length of a day in milliseconds.
const DayMillis = 86_400_000

// DefaultTimeLayouts are tried in order by TimeCodec. Input is lower-cased
// before matching so am/pm suffixes are case-insensitive.
var DefaultTimeLayouts = []string{
	"15:04:05.000",
	"15:04:05",
	"15:04",
	"3:04:05pm",
	"3:04:05 pm",
	"3:04pm",
	"3:04 pm",
	"3pm",
	"3 pm",
	"1504",
}

// TimeOfDay is an offset from local midnight in milliseconds, always within
// [0, DayMillis).
type TimeOfDay int64

// NewTimeOfDay builds a wrapped time of day.
func NewTimeOfDay(hour, minute, second, millis int) TimeOfDay {
	total := int64(hour)*3_600_000 + int64(minute)*60_000 + int64(second)*1000 + int64(millis)
	return wrapTime(total)
}

// TimeOfDayOf extracts the wall-clock time of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

func wrapTime(ms int64) TimeOfDay {
	ms %= DayMillis
	if ms < 0 {
		ms += DayMillis
	}
	return TimeOfDay(ms)
}

// Valid reports whether t is inside the day.
func (t TimeOfDay) Valid() bool { return t >= 0 && t < DayMillis }

// Hour returns 0-23.
func (t TimeOfDay) Hour() int { return int(t / 3_600_000) }

// Minute returns 0-59.
func (t TimeOfDay) Minute() int { return int(t/60_000) % 60 }

// Second returns 0-59.
func (t TimeOfDay) Second() int { return int(t/1000) % 60 }

// Millisecond returns 0-999.
func (t TimeOfDay) Millisecond() int { return int(t % 1000) }

// Add shifts the time, wrapping at the day boundary.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return wrapTime(int64(t) + d.Milliseconds())
}

// Duration converts the offset into a time.Duration.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Millisecond
}

func (t TimeOfDay) String() string {
	return formatTimeOfDay(t)
}

// TimeCodec parses wall-clock times. FormatLayout, when set, replaces the
// precision-preserving default output (callers accept any precision loss).
type TimeCodec struct {
	Layouts      []string
	FormatLayout string
}

func (c TimeCodec) layouts() []string {
	if len(c.Layouts) == 0 {
		return DefaultTimeLayouts
	}
	return c.Layouts
}

// Parse implements Codec.
func (c TimeCodec) Parse(text string) Value[TimeOfDay] {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return Empty[TimeOfDay]()
	}
	parsed, ok := parseLayouts(trimmed, c.layouts())
	if !ok {
		return Unresolved[TimeOfDay]()
	}
	return Of(TimeOfDayOf(parsed))
}

// Format implements Codec.
func (c TimeCodec) Format(v Value[TimeOfDay]) string {
	t, ok := v.Get()
	if !ok || !t.Valid() {
		return ""
	}
	if c.FormatLayout != "" {
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(t.Duration()).Format(c.FormatLayout)
	}
	return formatTimeOfDay(t)
}

func formatTimeOfDay(t TimeOfDay) string {
	switch {
	case t.Millisecond() != 0:
		return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour(), t.Minute(), t.Second(), t.Millisecond())
	case t.Second() != 0:
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	default:
		return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	}
}
