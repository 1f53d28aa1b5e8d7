package value

import "strings"

// BoolCodec parses yes/no answers. It formats as "yes" or "no".
type BoolCodec struct{}

// Parse implements Codec.
func (BoolCodec) Parse(text string) Value[bool] {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "":
		return Empty[bool]()
	case "y", "yes", "true", "t", "1", "on":
		return Of(true)
	case "n", "no", "false", "f", "0", "off":
		return Of(false)
	default:
		return Unresolved[bool]()
	}
}

// Format implements Codec.
func (BoolCodec) Format(v Value[bool]) string {
	b, ok := v.Get()
	switch {
	case !ok:
		return ""
	case b:
		return "yes"
	default:
		return "no"
	}
}

// BoolStepper flips the value in either direction; the fallback is false.
type BoolStepper struct{}

// Step implements Stepper.
func (BoolStepper) Step(base bool, _ int) bool { return !base }

// Fallback implements Stepper.
func (BoolStepper) Fallback() bool { return false }
