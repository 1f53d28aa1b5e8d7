package widgets

import (
	"github.com/goliatone/go-formfield/pkg/asyncselect"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/value"
)

// Part is one focusable text input of a control. Renderers draw one input
// per part and route keys to the part that owns focus.
type Part interface {
	ID() string
	Label() string
	Text() string
	Focused() bool
	Input(text string)
	KeyStep(direction int)
	MoveHighlight(delta int) int
	Enter() bool
	Escape() bool
	Valid() bool
	PickerVisible() bool
	// Candidates lists the picker entries as display text.
	Candidates() []string
	Highlighted() int
}

// Control binds a model field to the controller implementing its widget.
type Control interface {
	Field() model.Field
	Widget() string
	Parts() []Part
	// Focus gives focus to the part with the given id.
	Focus(partID string)
	// Leave moves focus from one part to next. A next outside the control
	// (or "") commits the control.
	Leave(partID, next string)
	// Blur commits the control when any part is focused.
	Blur()
	Focused() bool
	SetDisabled(disabled bool)
	Disabled() bool
	// Committed returns the last committed value in its JSON form.
	Committed() (any, value.State)
	// Display renders the committed value as text.
	Display() string
}

// Chooser is implemented by controls with a fixed options list.
type Chooser interface {
	Control
	Choices() []value.Option
	// Choose selects the given values and commits. Single-value controls
	// take exactly one value.
	Choose(values ...string) error
}

// Searcher is implemented by controls whose options come from a search.
type Searcher interface {
	Chooser
	// Search focuses the control and issues a search for term.
	Search(term string)
	Results() <-chan asyncselect.Result
	Apply(res asyncselect.Result) bool
	Loading() bool
	Err() error
	Close()
}

// ChangeFunc observes control previews and commits.
type ChangeFunc func(c Control, wasBlur bool)

// scalar is the controller surface shared by field.Controller, field.Select
// and asyncselect.Controller.
type scalar[T any] interface {
	ID() string
	Text() string
	Focused() bool
	Focus()
	Blur()
	Input(text string)
	KeyStep(direction int)
	MoveHighlight(delta int) int
	Enter() bool
	Escape() bool
	Valid() bool
	PickerVisible() bool
	Highlighted() int
	Candidates() []T
	Format(v value.Value[T]) string
	Committed() value.Value[T]
	SetDisabled(disabled bool)
	Disabled() bool
}

var (
	_ scalar[string] = (*field.Controller[string])(nil)
	_ scalar[string] = (*field.Select)(nil)
	_ scalar[string] = (*asyncselect.Controller)(nil)
)

type scalarPart[T any] struct {
	scalar[T]
	label string
}

func newPart[T any](ctrl scalar[T], label string) Part {
	return &scalarPart[T]{scalar: ctrl, label: label}
}

func (p *scalarPart[T]) Label() string { return p.label }

func (p *scalarPart[T]) Candidates() []string {
	raw := p.scalar.Candidates()
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = p.Format(value.Of(v))
	}
	return out
}
