package widgets

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-formfield/pkg/asyncselect"
	"github.com/goliatone/go-formfield/pkg/composite"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/multiselect"
	"github.com/goliatone/go-formfield/pkg/value"
)

type base struct {
	field    model.Field
	widget   string
	onChange ChangeFunc
}

func (b *base) Field() model.Field { return b.field }
func (b *base) Widget() string     { return b.widget }

func (b *base) notify(c Control, wasBlur bool) {
	if b.onChange != nil {
		b.onChange(c, wasBlur)
	}
}

// scalarControl drives a single-part field.
type scalarControl[T any] struct {
	base
	ctrl   scalar[T]
	part   Part
	encode func(T) any
}

func newScalarControl[T any](b base, ctrl scalar[T], encode func(T) any) *scalarControl[T] {
	return &scalarControl[T]{base: b, ctrl: ctrl, part: newPart(ctrl, b.field.Label), encode: encode}
}

func (c *scalarControl[T]) Parts() []Part { return []Part{c.part} }

func (c *scalarControl[T]) Focus(string) { c.ctrl.Focus() }

func (c *scalarControl[T]) Leave(partID, next string) {
	if partID == next {
		return
	}
	c.ctrl.Blur()
}

func (c *scalarControl[T]) Blur() { c.ctrl.Blur() }

func (c *scalarControl[T]) Focused() bool { return c.ctrl.Focused() }

func (c *scalarControl[T]) SetDisabled(disabled bool) { c.ctrl.SetDisabled(disabled) }

func (c *scalarControl[T]) Disabled() bool { return c.ctrl.Disabled() }

func (c *scalarControl[T]) Committed() (any, value.State) {
	return encodeValue(c.ctrl.Committed(), c.encode)
}

func (c *scalarControl[T]) Display() string {
	return c.ctrl.Format(c.ctrl.Committed())
}

func (c *scalarControl[T]) changed(_ value.Value[T], wasBlur bool) {
	c.notify(c, wasBlur)
}

// selectControl is a scalar control over a fixed options list.
type selectControl struct {
	*scalarControl[string]
	sel *field.Select
}

var _ Chooser = (*selectControl)(nil)

func newSelectControl(b base, sel *field.Select) *selectControl {
	c := &selectControl{scalarControl: newScalarControl[string](b, sel, encodeString), sel: sel}
	sel.SetOnChange(func(_ value.Value[string], wasBlur bool) { c.notify(c, wasBlur) })
	return c
}

func (c *selectControl) Choices() []value.Option { return c.sel.Options() }

func (c *selectControl) Choose(values ...string) error {
	return chooseOne(c.sel, c.sel.Options(), values)
}

// asyncControl is a select whose options are searched remotely.
type asyncControl struct {
	*scalarControl[string]
	ac *asyncselect.Controller
}

var _ Searcher = (*asyncControl)(nil)

func newAsyncControl(b base, ac *asyncselect.Controller) *asyncControl {
	c := &asyncControl{scalarControl: newScalarControl[string](b, ac, encodeString), ac: ac}
	ac.SetOnChange(func(_ value.Value[string], wasBlur bool) { c.notify(c, wasBlur) })
	return c
}

func (c *asyncControl) Choices() []value.Option { return c.ac.Options() }

func (c *asyncControl) Choose(values ...string) error {
	return chooseOne(c.ac, c.ac.Options(), values)
}

func (c *asyncControl) Search(term string) {
	if c.ac.Disabled() {
		return
	}
	c.ac.Focus()
	if c.ac.Text() == term {
		c.ac.Search()
		return
	}
	c.ac.Input(term)
}

func (c *asyncControl) Results() <-chan asyncselect.Result { return c.ac.Results() }

func (c *asyncControl) Apply(res asyncselect.Result) bool { return c.ac.Apply(res) }

func (c *asyncControl) Loading() bool { return c.ac.Loading() }

func (c *asyncControl) Err() error { return c.ac.Err() }

func (c *asyncControl) Close() { c.ac.Close() }

type picking interface {
	Focus()
	Blur()
	PickerSelect(v string)
	Committed() value.Value[string]
}

func chooseOne(p picking, options []value.Option, values []string) error {
	if len(values) != 1 {
		return fmt.Errorf("%w: expected one value, got %d", ErrUnknownChoice, len(values))
	}
	opt, ok := value.FindOption(options, values[0])
	if !ok || opt.Disabled {
		return fmt.Errorf("%w: %q", ErrUnknownChoice, values[0])
	}
	p.Focus()
	p.PickerSelect(opt.Value)
	p.Blur()
	return nil
}

// datetimeControl drives a date part and a time part.
type datetimeControl struct {
	base
	dt    *composite.Datetime
	parts []Part
}

func newDatetimeControl(b base, dt *composite.Datetime) *datetimeControl {
	c := &datetimeControl{base: b, dt: dt}
	c.parts = []Part{
		newPart(dt.DateField(), joinLabel(b.field.Label, "date")),
		newPart(dt.TimeField(), joinLabel(b.field.Label, "time")),
	}
	dt.SetOnChange(func(_ value.Value[time.Time], wasBlur bool) { c.notify(c, wasBlur) })
	return c
}

func (c *datetimeControl) Parts() []Part             { return c.parts }
func (c *datetimeControl) Focus(partID string)       { c.dt.FocusMember(partID) }
func (c *datetimeControl) Leave(partID, next string) { c.dt.BlurMember(partID, next) }
func (c *datetimeControl) Blur()                     { c.dt.Blur() }
func (c *datetimeControl) Focused() bool             { return c.dt.Focused() }
func (c *datetimeControl) SetDisabled(disabled bool) { c.dt.SetDisabled(disabled) }
func (c *datetimeControl) Disabled() bool            { return c.dt.Disabled() }
func (c *datetimeControl) Committed() (any, value.State) {
	return encodeValue(c.dt.Committed(), encodeInstant)
}

func (c *datetimeControl) Display() string {
	return displayParts(c.dt.DateField(), c.dt.TimeField())
}

// rangeControl drives a Range over date or datetime sides.
type rangeControl[T any] struct {
	base
	r        *composite.Range[T]
	parts    []Part
	encode   func(T) any
	display  func() string
	disabled bool
}

func newRangeControl[T any](b base, r *composite.Range[T], parts []Part, encode func(T) any, display func() string) *rangeControl[T] {
	c := &rangeControl[T]{base: b, r: r, parts: parts, encode: encode, display: display}
	r.SetOnChange(func(_ value.Range[T], wasBlur bool) { c.notify(c, wasBlur) })
	return c
}

func (c *rangeControl[T]) Parts() []Part             { return c.parts }
func (c *rangeControl[T]) Focus(partID string)       { c.r.FocusMember(partID) }
func (c *rangeControl[T]) Leave(partID, next string) { c.r.BlurMember(partID, next) }
func (c *rangeControl[T]) Blur()                     { c.r.Blur() }
func (c *rangeControl[T]) Focused() bool             { return c.r.Focused() }
func (c *rangeControl[T]) Disabled() bool            { return c.disabled }
func (c *rangeControl[T]) Display() string           { return c.display() }

func (c *rangeControl[T]) SetDisabled(disabled bool) {
	c.disabled = disabled
	c.r.SetDisabled(disabled)
}

// Committed encodes the range as {"start", "end"}. Unresolved sides are
// reported for the whole range; an empty side is null.
func (c *rangeControl[T]) Committed() (any, value.State) {
	rv := c.r.Committed()
	switch {
	case rv.IsUnresolved():
		return nil, value.StateUnresolved
	case rv.IsEmpty():
		return nil, value.StateEmpty
	}
	start, _ := encodeValue(rv.Start, c.encode)
	end, _ := encodeValue(rv.End, c.encode)
	return map[string]any{"start": start, "end": end}, value.StateConcrete
}

// multiControl drives a multiselect.
type multiControl struct {
	base
	ms      *multiselect.Controller
	options []value.Option
	part    Part
}

var _ Chooser = (*multiControl)(nil)

func newMultiControl(b base, ms *multiselect.Controller, options []value.Option) *multiControl {
	c := &multiControl{base: b, ms: ms, options: slices.Clone(options)}
	c.part = &multiPart{Controller: ms, label: b.field.Label}
	ms.SetOnChange(func(_ []string, wasBlur bool) { c.notify(c, wasBlur) })
	return c
}

func (c *multiControl) Parts() []Part             { return []Part{c.part} }
func (c *multiControl) Focus(string)              { c.ms.Focus() }
func (c *multiControl) Blur()                     { c.ms.Blur() }
func (c *multiControl) Focused() bool             { return c.ms.Focused() }
func (c *multiControl) SetDisabled(disabled bool) { c.ms.SetDisabled(disabled) }
func (c *multiControl) Disabled() bool            { return c.ms.Disabled() }
func (c *multiControl) Choices() []value.Option   { return slices.Clone(c.options) }

func (c *multiControl) Leave(partID, next string) {
	if partID == next {
		return
	}
	c.ms.Blur()
}

// Committed always reports the selection, an empty list included.
func (c *multiControl) Committed() (any, value.State) {
	return c.ms.Values(), value.StateConcrete
}

func (c *multiControl) Display() string {
	selected := c.ms.Selected()
	labels := make([]string, len(selected))
	for i, opt := range selected {
		labels[i] = opt.DisplayLabel()
	}
	return strings.Join(labels, ", ")
}

// Choose replaces the selection and commits.
func (c *multiControl) Choose(values ...string) error {
	if c.ms.Disabled() {
		return nil
	}
	for _, v := range values {
		opt, ok := value.FindOption(c.options, v)
		if !ok || opt.Disabled {
			return fmt.Errorf("%w: %q", ErrUnknownChoice, v)
		}
	}
	c.ms.Focus()
	c.ms.SetValue(values)
	c.ms.Blur()
	return nil
}

type multiPart struct {
	*multiselect.Controller
	label string
}

func (p *multiPart) Label() string { return p.label }

func (p *multiPart) KeyStep(int) {}

func (p *multiPart) Candidates() []string {
	raw := p.Controller.Candidates()
	out := make([]string, len(raw))
	for i, opt := range raw {
		out[i] = opt.DisplayLabel()
	}
	return out
}

func joinLabel(label, part string) string {
	if label == "" {
		return part
	}
	return label + " (" + part + ")"
}

type texter interface{ Text() string }

func displayParts(parts ...texter) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if text := p.Text(); text != "" {
			out = append(out, text)
		}
	}
	return strings.Join(out, " ")
}
