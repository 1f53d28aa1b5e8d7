package value

import (
	"math"
	"strconv"
	"strings"
)

// stepTolerance absorbs binary floating point noise in step alignment checks
// (0.3 is a multiple of 0.1 even though math.Mod disagrees).
const stepTolerance = 1e-9

// Float returns a pointer to f, handy for optional bounds.
func Float(f float64) *float64 {
	return &f
}

// NumberCodec parses numbers and enforces optional bounds and step. Values
// that are syntactically valid but out of bounds or off step are Unresolved,
// never clamped.
type NumberCodec struct {
	Min  *float64
	Max  *float64
	Step *float64
}

// Parse implements Codec.
func (c NumberCodec) Parse(text string) Value[float64] {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty[float64]()
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Unresolved[float64]()
	}
	if !c.Allows(n) {
		return Unresolved[float64]()
	}
	return Of(n)
}

// Allows reports whether n satisfies the bounds and step.
func (c NumberCodec) Allows(n float64) bool {
	if c.Min != nil && n < *c.Min {
		return false
	}
	if c.Max != nil && n > *c.Max {
		return false
	}
	if c.Step != nil && *c.Step > 0 && !aligned(n, *c.Step) {
		return false
	}
	return true
}

// Format implements Codec.
func (c NumberCodec) Format(v Value[float64]) string {
	n, ok := v.Get()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func aligned(n, step float64) bool {
	ratio := n / step
	return math.Abs(ratio-math.Round(ratio)) <= stepTolerance*math.Max(1, math.Abs(ratio))
}

// decimals returns how many fractional digits step carries, used to round
// stepped values back onto a clean decimal grid.
func decimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		return len(s) - idx - 1
	}
	return 0
}

func roundTo(n float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(n*scale) / scale
}
