package value

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Duration is a signed magnitude in milliseconds.
type Duration int64

// Duration units in milliseconds.
const (
	Millisecond Duration = 1
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
	Week                 = 7 * Day
)

// DurationOf converts a time.Duration, truncating below a millisecond.
func DurationOf(d time.Duration) Duration {
	return Duration(d.Milliseconds())
}

// Std converts to time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d) * time.Millisecond
}

func (d Duration) String() string {
	return formatDuration(d)
}

var (
	clockDuration   = regexp.MustCompile(`^(\d+):([0-5]?\d)$`)
	bareNumber      = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	durationSegment = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]+)[\s,]*`)
)

var durationUnits = map[string]Duration{
	"ms": Millisecond, "msec": Millisecond, "millisecond": Millisecond, "milliseconds": Millisecond,
	"s": Second, "sec": Second, "secs": Second, "second": Second, "seconds": Second,
	"m": Minute, "min": Minute, "mins": Minute, "minute": Minute, "minutes": Minute,
	"h": Hour, "hr": Hour, "hrs": Hour, "hour": Hour, "hours": Hour,
	"d": Day, "day": Day, "days": Day,
	"w": Week, "wk": Week, "wks": Week, "week": Week, "weeks": Week,
}

// DurationCodec parses free-form durations such as "2h 30m", "1d4h",
// "-90s", "1:30" (hours:minutes) or a bare number of minutes.
type DurationCodec struct{}

// Parse implements Codec.
func (DurationCodec) Parse(text string) Value[Duration] {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return Empty[Duration]()
	}

	sign := Duration(1)
	switch trimmed[0] {
	case '-':
		sign = -1
		trimmed = strings.TrimSpace(trimmed[1:])
	case '+':
		trimmed = strings.TrimSpace(trimmed[1:])
	}
	if trimmed == "" {
		return Unresolved[Duration]()
	}

	if m := clockDuration.FindStringSubmatch(trimmed); m != nil {
		hours, _ := strconv.ParseInt(m[1], 10, 64)
		minutes, _ := strconv.ParseInt(m[2], 10, 64)
		return Of(sign * (Duration(hours)*Hour + Duration(minutes)*Minute))
	}
	if bareNumber.MatchString(trimmed) {
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Unresolved[Duration]()
		}
		return Of(sign * Duration(math.Round(n*float64(Minute))))
	}

	var total float64
	rest := trimmed
	for rest != "" {
		m := durationSegment.FindStringSubmatch(rest)
		if m == nil {
			return Unresolved[Duration]()
		}
		unit, ok := durationUnits[m[2]]
		if !ok {
			return Unresolved[Duration]()
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Unresolved[Duration]()
		}
		total += n * float64(unit)
		rest = rest[len(m[0]):]
	}
	return Of(sign * Duration(math.Round(total)))
}

// Format implements Codec.
func (DurationCodec) Format(v Value[Duration]) string {
	d, ok := v.Get()
	if !ok {
		return ""
	}
	return formatDuration(d)
}

func formatDuration(d Duration) string {
	if d == 0 {
		return "0m"
	}
	var b strings.Builder
	magnitude := d
	if d < 0 {
		b.WriteByte('-')
		magnitude = -d
	}
	units := []struct {
		size   Duration
		suffix string
	}{
		{Week, "w"}, {Day, "d"}, {Hour, "h"}, {Minute, "m"}, {Second, "s"}, {Millisecond, "ms"},
	}
	first := true
	for _, unit := range units {
		count := magnitude / unit.size
		if count == 0 {
			continue
		}
		magnitude -= count * unit.size
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(strconv.FormatInt(int64(count), 10))
		b.WriteString(unit.suffix)
	}
	return b.String()
}
