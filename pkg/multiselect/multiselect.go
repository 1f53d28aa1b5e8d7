// Package multiselect implements the multi-value controller: a list of
// selected option values plus one live filter buffer and a dropdown of the
// options that are not selected yet.
package multiselect

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/picker"
	"github.com/goliatone/go-formfield/pkg/value"
)

// ChangeFunc receives every membership change (wasBlur=false) and the final
// list when focus leaves (wasBlur=true).
type ChangeFunc func(values []string, wasBlur bool)

// Config configures New.
type Config struct {
	Options  []value.Option
	Value    []string
	OnChange ChangeFunc
}

// Option tunes a controller.
type Option func(*Controller)

// WithID sets the controller id.
func WithID(id string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			c.id = trimmed
		}
	}
}

// WithLogger routes diagnostics.
func WithLogger(logger debug.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDisabled starts the controller disabled.
func WithDisabled(disabled bool) Option {
	return func(c *Controller) {
		if disabled {
			c.phase = field.PhaseDisabled
		}
	}
}

// Controller holds the selection and the filter buffer.
type Controller struct {
	id       string
	logger   debug.Logger
	onChange ChangeFunc

	options  []value.Option
	values   []string
	text     string
	phase    field.Phase
	filtered []value.Option
	nav      picker.Navigator
}

// New builds a controller. Duplicate initial values are collapsed.
func New(cfg Config, opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		logger:   debug.Default(),
		onChange: cfg.OnChange,
		options:  slices.Clone(cfg.Options),
		values:   dedupe(cfg.Value),
		nav:      picker.NewNavigator(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.refilter()
	return c
}

// ID returns the controller id.
func (c *Controller) ID() string { return c.id }

// Text returns the filter buffer.
func (c *Controller) Text() string { return c.text }

// Values returns a copy of the selected values.
func (c *Controller) Values() []string { return slices.Clone(c.values) }

// Selected returns the options of the selected values, in selection order.
// Values without a matching option are reported with their raw value.
func (c *Controller) Selected() []value.Option {
	out := make([]value.Option, 0, len(c.values))
	for _, v := range c.values {
		opt, ok := value.FindOption(c.options, v)
		if !ok {
			opt = value.Option{Value: v}
		}
		out = append(out, opt)
	}
	return out
}

// Phase returns the controller state.
func (c *Controller) Phase() field.Phase { return c.phase }

// Focused reports whether the filter buffer owns focus.
func (c *Controller) Focused() bool {
	return c.phase == field.PhaseEditing || c.phase == field.PhasePicking
}

// Disabled reports whether interaction is ignored.
func (c *Controller) Disabled() bool { return c.phase == field.PhaseDisabled }

// PickerVisible applies the popup visibility rule.
func (c *Controller) PickerVisible() bool {
	return picker.Visible(c.Focused(), c.phase == field.PhasePicking, c.Disabled())
}

// Candidates returns the options matching the filter, minus selected ones.
func (c *Controller) Candidates() []value.Option { return slices.Clone(c.filtered) }

// Highlighted returns the highlighted candidate index or -1.
func (c *Controller) Highlighted() int { return c.nav.Index() }

// Valid reports whether the filter text matches a candidate. A blank filter
// is always valid.
func (c *Controller) Valid() bool { return c.text == "" || len(c.filtered) > 0 }

// Focus opens the dropdown.
func (c *Controller) Focus() {
	if c.Disabled() {
		return
	}
	c.phase = field.PhasePicking
	c.refilter()
}

// Input replaces the filter buffer and opens the dropdown.
func (c *Controller) Input(text string) {
	if c.Disabled() {
		return
	}
	c.text = text
	c.phase = field.PhasePicking
	c.refilter()
}

// Blur clears the filter, closes the dropdown and commits the selection.
func (c *Controller) Blur() {
	if !c.Focused() {
		return
	}
	c.phase = field.PhaseIdle
	c.text = ""
	c.refilter()
	c.emit(true)
}

// MoveHighlight moves through the candidates with wrap-around.
func (c *Controller) MoveHighlight(delta int) int {
	if !c.Focused() {
		return -1
	}
	if c.phase != field.PhasePicking {
		c.phase = field.PhasePicking
		c.refilter()
	}
	return c.nav.Move(delta)
}

// Enter adds the highlighted candidate. It reports whether the key was
// consumed.
func (c *Controller) Enter() bool {
	return c.acceptHighlighted()
}

// Tab adds the highlighted candidate and keeps focus; without a highlighted
// candidate the key is left to move focus.
func (c *Controller) Tab() bool {
	return c.acceptHighlighted()
}

// Backspace on an empty filter removes the last selected value.
func (c *Controller) Backspace() bool {
	if !c.Focused() || c.text != "" || len(c.values) == 0 {
		return false
	}
	c.removeAt(len(c.values) - 1)
	return true
}

// Remove splices out the value at index and returns focus to the filter.
func (c *Controller) Remove(index int) {
	if c.Disabled() || index < 0 || index >= len(c.values) {
		return
	}
	c.removeAt(index)
	if !c.Focused() {
		c.phase = field.PhaseEditing
	}
}

// Add selects v. Values already selected are left in place; values missing
// from the options are logged and ignored.
func (c *Controller) Add(v string) {
	if c.Disabled() {
		return
	}
	opt, ok := value.FindOption(c.options, v)
	if !ok || opt.Disabled {
		c.logger.Logf("multiselect %s: ignoring unknown option %q", c.id, v)
		return
	}
	c.text = ""
	if slices.Contains(c.values, v) {
		c.refilter()
		return
	}
	c.values = append(slices.Clone(c.values), v)
	c.refilter()
	c.emit(false)
}

// Escape clears the filter and closes the dropdown.
func (c *Controller) Escape() bool {
	if !c.Focused() {
		return false
	}
	c.text = ""
	c.phase = field.PhaseEditing
	c.refilter()
	return true
}

// SetValue replaces the selection from outside without emitting.
func (c *Controller) SetValue(values []string) {
	c.values = dedupe(values)
	c.refilter()
}

// SetOptions replaces the options list.
func (c *Controller) SetOptions(options []value.Option) {
	c.options = slices.Clone(options)
	c.refilter()
}

// SetDisabled toggles the disabled state, committing a focused controller
// first.
func (c *Controller) SetDisabled(disabled bool) {
	switch {
	case disabled && !c.Disabled():
		c.Blur()
		c.phase = field.PhaseDisabled
	case !disabled && c.Disabled():
		c.phase = field.PhaseIdle
	}
}

// SetOnChange replaces the change callback.
func (c *Controller) SetOnChange(fn ChangeFunc) { c.onChange = fn }

func (c *Controller) acceptHighlighted() bool {
	if c.phase != field.PhasePicking {
		return false
	}
	idx := c.nav.Index()
	if idx < 0 || idx >= len(c.filtered) {
		return false
	}
	c.Add(c.filtered[idx].Value)
	return true
}

func (c *Controller) removeAt(index int) {
	c.values = slices.Delete(slices.Clone(c.values), index, index+1)
	c.refilter()
	c.emit(false)
}

func (c *Controller) refilter() {
	c.filtered = value.FilterOptions(c.options, c.text, c.values)
	c.nav.Reset(len(c.filtered))
}

func (c *Controller) emit(wasBlur bool) {
	if c.onChange != nil {
		c.onChange(slices.Clone(c.values), wasBlur)
	}
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
