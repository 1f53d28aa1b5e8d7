package widgets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formfield/pkg/value"
)

func encodeValue[T any](v value.Value[T], encode func(T) any) (any, value.State) {
	raw, ok := v.Get()
	if !ok {
		return nil, v.State()
	}
	return encode(raw), value.StateConcrete
}

func encodeString(s string) any                     { return s }
func encodeBool(b bool) any                         { return b }
func encodeDate(d value.Date) any                   { return d.String() }
func encodeTime(t value.TimeOfDay) any              { return t.String() }
func encodeMonth(m value.Month) any                 { return m.String() }
func encodeDuration(d value.Duration) any           { return d.String() }
func encodeInstant(t time.Time) any                 { return t.Format(time.RFC3339) }
func encodeCalendarMonth(m value.CalendarMonth) any { return int(m) }

func numberEncoder(integer bool) func(float64) any {
	if integer {
		return func(n float64) any { return int64(n) }
	}
	return func(n float64) any { return n }
}

// decode converts a decoded JSON/YAML value or a schema default into a typed
// value. Nil means no opinion and stays Unresolved; anything the codec
// rejects is an error.
func decode[T any](path string, raw any, codec value.Codec[T]) (value.Value[T], error) {
	if raw == nil {
		return value.Unresolved[T](), nil
	}
	text, ok := scalarText(raw)
	if !ok {
		return value.Unresolved[T](), fmt.Errorf("%w: %s: unsupported %T", ErrInvalidValue, path, raw)
	}
	v := codec.Parse(text)
	if v.IsUnresolved() {
		return v, fmt.Errorf("%w: %s: %q", ErrInvalidValue, path, text)
	}
	return v, nil
}

func scalarText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	case time.Time:
		return v.Format(time.RFC3339), true
	default:
		return "", false
	}
}

func decodeStrings(path string, raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			text, ok := scalarText(item)
			if !ok {
				return nil, fmt.Errorf("%w: %s: unsupported item %T", ErrInvalidValue, path, item)
			}
			out = append(out, text)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s: expected a list, got %T", ErrInvalidValue, path, raw)
	}
}

func decodeRange[T any](path string, raw any, codec value.Codec[T]) (value.Range[T], error) {
	if raw == nil {
		return value.Range[T]{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return value.Range[T]{}, fmt.Errorf("%w: %s: expected an object, got %T", ErrInvalidValue, path, raw)
	}
	start, err := decodeSide(path+".start", m, "start", codec)
	if err != nil {
		return value.Range[T]{}, err
	}
	end, err := decodeSide(path+".end", m, "end", codec)
	if err != nil {
		return value.Range[T]{}, err
	}
	return value.Range[T]{Start: start, End: end}, nil
}

// decodeSide maps a present null to Empty and a missing key to Unresolved.
func decodeSide[T any](path string, m map[string]any, key string, codec value.Codec[T]) (value.Value[T], error) {
	raw, present := m[key]
	if !present {
		return value.Unresolved[T](), nil
	}
	if raw == nil {
		return value.Empty[T](), nil
	}
	return decode(path, raw, codec)
}

// instantCodec reads RFC3339 instants and falls back to the configured
// "date time" layouts interpreted in loc.
func instantCodec(fallback value.DatetimeCodec) value.Codec[time.Time] {
	loc := fallback.Location
	if loc == nil {
		loc = time.Local
	}
	return value.CodecFuncs[time.Time]{
		ParseFunc: func(text string) value.Value[time.Time] {
			for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04"} {
				if t, err := time.ParseInLocation(layout, text, loc); err == nil {
					return value.Of(t)
				}
			}
			return fallback.Parse(text)
		},
		FormatFunc: func(t time.Time) string { return t.Format(time.RFC3339) },
	}
}

// Lookup returns the value stored under a dotted path in nested maps.
func Lookup(values map[string]any, path string) (any, bool) {
	if values == nil || path == "" {
		return nil, false
	}
	var current any = values
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Values collects the committed values of concrete controls into nested maps
// keyed by field path. Empty and unresolved controls are left out.
func Values(controls []Control) map[string]any {
	out := map[string]any{}
	for _, c := range controls {
		v, state := c.Committed()
		if state != value.StateConcrete {
			continue
		}
		assign(out, strings.Split(c.Field().Path, "."), v)
	}
	return out
}

func assign(dst map[string]any, segments []string, v any) {
	for _, segment := range segments[:len(segments)-1] {
		next, ok := dst[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			dst[segment] = next
		}
		dst = next
	}
	dst[segments[len(segments)-1]] = v
}

// Missing reports whether a required control lacks a value: its commit is
// not concrete, or it is an empty selection.
func Missing(c Control) bool {
	v, state := c.Committed()
	if state != value.StateConcrete {
		return true
	}
	if list, ok := v.([]string); ok {
		return len(list) == 0
	}
	return false
}
