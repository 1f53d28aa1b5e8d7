package field

import (
	"reflect"

	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/picker"
	"github.com/goliatone/go-formfield/pkg/value"
)

// Phase enumerates the controller states.
type Phase int

const (
	// PhaseIdle is the unfocused state; the buffer mirrors the external value.
	PhaseIdle Phase = iota
	// PhaseEditing is focused with the picker closed.
	PhaseEditing
	// PhasePicking is focused with the picker open.
	PhasePicking
	// PhaseDisabled ignores every interaction.
	PhaseDisabled
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhasePicking:
		return "picking"
	case PhaseDisabled:
		return "disabled"
	default:
		return "idle"
	}
}

// ChangeFunc receives previews (wasBlur=false) and commits (wasBlur=true).
type ChangeFunc[T any] func(v value.Value[T], wasBlur bool)

// Handle is the imperative surface parents may call on a controller.
type Handle interface {
	Focus()
	OverrideText(text string)
	ResetTextFromValue()
}

// Config carries the type-dependent collaborators of a controller.
type Config[T any] struct {
	Codec value.Codec[T]
	// Value is the initial external value. The zero Value (Unresolved) means
	// the parent has no opinion yet.
	Value    value.Value[T]
	OnChange ChangeFunc[T]
	// Stepper enables arrow-key stepping; nil disables it.
	Stepper value.Stepper[T]
	// Candidates returns the picker entries for the current text.
	Candidates func(query string) []T
	// Equal compares concrete values; reflect.DeepEqual when nil.
	Equal func(a, b T) bool
}

// Controller is the single-field state machine.
type Controller[T any] struct {
	id         string
	codec      value.Codec[T]
	stepper    value.Stepper[T]
	candidates func(query string) []T
	equal      func(a, b T) bool
	onChange   ChangeFunc[T]
	kind       picker.Kind
	autoErase  bool
	logger     debug.Logger

	phase     Phase
	text      string
	parsed    value.Value[T]
	external  value.Value[T]
	committed value.Value[T]

	filtered []T
	nav      picker.Navigator
}

var _ Handle = (*Controller[int])(nil)

// New constructs a controller. The buffer is seeded by formatting the initial
// value.
func New[T any](cfg Config[T], opts ...Option) *Controller[T] {
	s := resolveSettings(opts)

	c := &Controller[T]{
		id:         s.id,
		codec:      cfg.Codec,
		stepper:    cfg.Stepper,
		candidates: cfg.Candidates,
		equal:      cfg.Equal,
		onChange:   cfg.OnChange,
		kind:       s.kind,
		autoErase:  s.autoErase,
		logger:     s.logger,
		nav:        picker.NewNavigator(),
	}
	if c.codec == nil {
		c.codec = value.CodecFuncs[T]{}
	}
	if c.equal == nil {
		c.equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	c.seed(cfg.Value)
	if s.disabled {
		c.phase = PhaseDisabled
	}
	return c
}

func (c *Controller[T]) seed(v value.Value[T]) {
	c.external = v
	c.committed = v
	c.reformat(v)
}

// reformat rewrites the buffer from v. A blank buffer seeded from a
// no-opinion value reads as Empty so composites can combine it.
func (c *Controller[T]) reformat(v value.Value[T]) {
	c.text = c.codec.Format(v)
	c.parsed = v
	if v.IsUnresolved() {
		c.parsed = c.codec.Parse(c.text)
	}
}

// ID returns the controller identifier.
func (c *Controller[T]) ID() string { return c.id }

// IDs lists the identifiers owned by the controller (just its own).
func (c *Controller[T]) IDs() []string { return []string{c.id} }

// Text returns the current buffer.
func (c *Controller[T]) Text() string { return c.text }

// Value returns the last value known outward (emitted or pushed in).
func (c *Controller[T]) Value() value.Value[T] { return c.external }

// Current returns the value parsed from the current buffer.
func (c *Controller[T]) Current() value.Value[T] { return c.parsed }

// Committed returns the last committed value.
func (c *Controller[T]) Committed() value.Value[T] { return c.committed }

// Phase returns the controller state.
func (c *Controller[T]) Phase() Phase { return c.phase }

// Focused reports whether the controller owns keyboard focus.
func (c *Controller[T]) Focused() bool {
	return c.phase == PhaseEditing || c.phase == PhasePicking
}

// Disabled reports whether the controller ignores interaction.
func (c *Controller[T]) Disabled() bool { return c.phase == PhaseDisabled }

// PickerOpen reports the raw open flag.
func (c *Controller[T]) PickerOpen() bool { return c.phase == PhasePicking }

// PickerVisible applies the popup visibility rule.
func (c *Controller[T]) PickerVisible() bool {
	if c.kind == picker.KindNone {
		return false
	}
	return picker.Visible(c.Focused(), c.PickerOpen(), c.Disabled())
}

// Kind returns the picker kind.
func (c *Controller[T]) Kind() picker.Kind { return c.kind }

// Valid reports whether the buffer currently resolves (Empty or Concrete).
// Views use it to mute picker match highlighting.
func (c *Controller[T]) Valid() bool { return !c.parsed.IsUnresolved() }

// AutoErase reports the blur policy.
func (c *Controller[T]) AutoErase() bool { return c.autoErase }

// Candidates returns the filtered picker entries.
func (c *Controller[T]) Candidates() []T {
	return append([]T(nil), c.filtered...)
}

// Highlighted returns the highlighted candidate index or -1.
func (c *Controller[T]) Highlighted() int { return c.nav.Index() }

// Logger returns the diagnostics sink.
func (c *Controller[T]) Logger() debug.Logger { return c.logger }

// Format renders v with the controller codec.
func (c *Controller[T]) Format(v value.Value[T]) string { return c.codec.Format(v) }

// Focus moves the controller into the focused state and opens the picker.
func (c *Controller[T]) Focus() {
	if c.phase == PhaseDisabled {
		return
	}
	c.open()
}

// Input replaces the buffer, parses it and emits a preview.
func (c *Controller[T]) Input(text string) {
	if c.phase == PhaseDisabled {
		return
	}
	c.text = text
	c.parsed = c.codec.Parse(text)
	c.external = c.parsed
	c.open()
	c.emit(c.parsed, false)
}

// Flush computes the value blur would commit without touching any state. An
// untouched buffer keeps the committed value even when the codec cannot parse
// its own formatting back (a disabled or not yet loaded option).
func (c *Controller[T]) Flush() value.Value[T] {
	if c.committed.IsConcrete() && c.text == c.codec.Format(c.committed) {
		return c.committed
	}
	parsed := c.codec.Parse(c.text)
	switch {
	case parsed.IsConcrete(), parsed.IsEmpty():
		return parsed
	case c.autoErase:
		return value.Empty[T]()
	default:
		return c.committed
	}
}

// Blur commits the flushed value, normalises the buffer and closes the
// picker. Blurring an unfocused controller is a no-op.
func (c *Controller[T]) Blur() {
	if !c.Focused() {
		return
	}
	v := c.Flush()
	c.phase = PhaseIdle
	c.close()
	c.text = c.codec.Format(v)
	c.parsed = v
	c.external = v
	c.committed = v
	c.emit(v, true)
}

// KeyStep moves the value one step. The base is the current external value,
// or the stepper fallback when there is none.
func (c *Controller[T]) KeyStep(direction int) {
	if c.phase == PhaseDisabled || c.stepper == nil {
		return
	}
	base, ok := c.external.Get()
	if !ok {
		base = c.stepper.Fallback()
	}
	next := value.Of(c.stepper.Step(base, direction))
	c.text = c.codec.Format(next)
	c.parsed = next
	c.external = next
	c.refilter()
	c.emit(next, false)
}

// PickerSelect applies a picker choice, returns focus to the buffer and
// closes the picker.
func (c *Controller[T]) PickerSelect(v T) {
	if c.phase == PhaseDisabled {
		return
	}
	selected := value.Of(v)
	c.text = c.codec.Format(selected)
	c.parsed = selected
	c.external = selected
	c.phase = PhaseEditing
	c.close()
	c.emit(selected, false)
}

// Arrow routes an up/down key: list-like pickers move the highlight, other
// fields step their value.
func (c *Controller[T]) Arrow(direction int) {
	if c.kind.AcceptsOnEnter() && c.candidates != nil {
		c.MoveHighlight(direction)
		return
	}
	c.KeyStep(direction)
}

// MoveHighlight moves the highlighted candidate, opening the picker first if
// needed. Up (negative) moves towards the start of the list.
func (c *Controller[T]) MoveHighlight(delta int) int {
	if !c.Focused() {
		return -1
	}
	if c.phase != PhasePicking {
		c.open()
	}
	return c.nav.Move(delta)
}

// Enter accepts the highlighted candidate for list-like pickers or simply
// closes calendar pickers. It reports whether the key was consumed.
func (c *Controller[T]) Enter() bool {
	if c.phase != PhasePicking {
		return false
	}
	if c.kind.AcceptsOnEnter() {
		if idx := c.nav.Index(); idx >= 0 && idx < len(c.filtered) {
			c.PickerSelect(c.filtered[idx])
			return true
		}
	}
	c.phase = PhaseEditing
	c.close()
	return true
}

// Escape discards the in-progress edit, reformatting from the last committed
// value, and closes the picker.
func (c *Controller[T]) Escape() bool {
	if !c.Focused() {
		return false
	}
	c.reformat(c.committed)
	c.phase = PhaseEditing
	c.close()
	if !c.sameValue(c.external, c.committed) {
		c.external = c.committed
		c.emit(c.committed, false)
	}
	return true
}

// SetValue applies an external value change. While unfocused the buffer is
// reseeded; while focused only when the buffer no longer parses to v, so
// echoes of our own previews never clobber in-progress typing.
func (c *Controller[T]) SetValue(v value.Value[T]) {
	if !c.Focused() {
		c.seed(v)
		return
	}
	echo := c.sameValue(v, c.external)
	c.external = v
	if echo {
		return
	}
	if !v.IsUnresolved() {
		c.committed = v
	}
	if !c.sameValue(c.codec.Parse(c.text), v) {
		c.reformat(v)
		c.refilter()
	}
}

// SetDisabled toggles the disabled state. Disabling a focused field blurs it
// first so no open picker or uncommitted edit survives.
func (c *Controller[T]) SetDisabled(disabled bool) {
	switch {
	case disabled && c.phase != PhaseDisabled:
		c.Blur()
		c.close()
		c.phase = PhaseDisabled
	case !disabled && c.phase == PhaseDisabled:
		c.phase = PhaseIdle
	}
}

// OverrideText replaces the buffer without emitting.
func (c *Controller[T]) OverrideText(text string) {
	c.text = text
	c.parsed = c.codec.Parse(text)
	c.refilter()
}

// ResetTextFromValue reseeds the buffer from the external value.
func (c *Controller[T]) ResetTextFromValue() {
	c.reformat(c.external)
	c.refilter()
}

// SetOnChange replaces the change callback.
func (c *Controller[T]) SetOnChange(fn ChangeFunc[T]) {
	c.onChange = fn
}

func (c *Controller[T]) open() {
	if c.kind == picker.KindNone {
		if c.phase != PhasePicking {
			c.phase = PhaseEditing
		}
		return
	}
	c.phase = PhasePicking
	c.refilter()
}

func (c *Controller[T]) close() {
	c.nav.Reset(len(c.filtered))
}

func (c *Controller[T]) refilter() {
	if c.candidates == nil {
		c.filtered = nil
		c.nav.Reset(0)
		return
	}
	c.filtered = c.candidates(c.text)
	c.nav.Reset(len(c.filtered))
}

func (c *Controller[T]) sameValue(a, b value.Value[T]) bool {
	return value.Equal(a, b, c.equal)
}

func (c *Controller[T]) emit(v value.Value[T], wasBlur bool) {
	if c.onChange == nil {
		return
	}
	c.onChange(v, wasBlur)
}
