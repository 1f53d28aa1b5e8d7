package value

import (
	"strings"
	"time"
)

// Codec converts between text buffers and values.
type Codec[T any] interface {
	Parse(text string) Value[T]
	Format(v Value[T]) string
}

// CodecFuncs adapts plain functions into a Codec so callers can plug in their
// own localisation. Blank input and non-concrete values are handled before the
// functions are invoked.
type CodecFuncs[T any] struct {
	ParseFunc  func(text string) Value[T]
	FormatFunc func(v T) string
}

// Parse implements Codec.
func (c CodecFuncs[T]) Parse(text string) Value[T] {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty[T]()
	}
	if c.ParseFunc == nil {
		return Unresolved[T]()
	}
	return c.ParseFunc(trimmed)
}

// Format implements Codec.
func (c CodecFuncs[T]) Format(v Value[T]) string {
	raw, ok := v.Get()
	if !ok || c.FormatFunc == nil {
		return ""
	}
	return c.FormatFunc(raw)
}

// parseLayouts walks layouts in priority order and returns the first
// successful time.Parse result.
func parseLayouts(text string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if layout == "" {
			continue
		}
		parsed, err := time.Parse(layout, text)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
