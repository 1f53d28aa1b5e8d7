package composite

import (
	"time"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/value"
)

// DatetimeConfig configures NewDatetime.
type DatetimeConfig struct {
	Value    value.Value[time.Time]
	OnChange field.ChangeFunc[time.Time]
	// Location interprets the wall-clock parts (time.Local when nil).
	Location *time.Location
	// DefaultTime completes a value when only the date is known.
	DefaultTime value.TimeOfDay
	// DefaultDate completes a value when only the time is known; today when
	// not concrete.
	DefaultDate value.Value[value.Date]
	Now         value.Clock

	DateLayouts  []string
	TimeLayouts  []string
	TimeInterval int
}

// Datetime combines a date field and a time field into one instant.
type Datetime struct {
	id          string
	scope       *Scope
	date        *field.Controller[value.Date]
	time        *field.Controller[value.TimeOfDay]
	loc         *time.Location
	defaultTime value.TimeOfDay
	defaultDate value.Value[value.Date]
	now         value.Clock
	onChange    field.ChangeFunc[time.Time]

	focus      FocusInput
	external   value.Value[time.Time]
	committed  value.Value[time.Time]
	committing bool
}

// NewDatetime builds the composite and its two members.
func NewDatetime(cfg DatetimeConfig, opts ...Option) *Datetime {
	s := resolveSettings(opts)
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	dt := &Datetime{
		id:          s.id,
		loc:         loc,
		defaultTime: cfg.DefaultTime,
		defaultDate: cfg.DefaultDate,
		now:         cfg.Now,
		onChange:    cfg.OnChange,
		external:    cfg.Value,
		committed:   cfg.Value,
	}
	datePart, timePart := dt.split(cfg.Value)
	dt.date = field.NewDate(field.DateConfig{
		Value:    datePart,
		OnChange: func(value.Value[value.Date], bool) { dt.memberChanged() },
		Layouts:  cfg.DateLayouts,
		Now:      cfg.Now,
	}, s.memberOptions("date")...)
	dt.time = field.NewTime(field.TimeConfig{
		Value:    timePart,
		OnChange: func(value.Value[value.TimeOfDay], bool) { dt.memberChanged() },
		Layouts:  cfg.TimeLayouts,
		Interval: cfg.TimeInterval,
		Start:    cfg.DefaultTime,
	}, s.memberOptions("time")...)
	dt.scope = NewScope(dt.date.ID(), dt.time.ID())
	if s.disabled {
		dt.SetDisabled(true)
	}
	return dt
}

// ID returns the composite id.
func (dt *Datetime) ID() string { return dt.id }

// IDs lists the member ids.
func (dt *Datetime) IDs() []string { return dt.scope.IDs() }

// Scope returns the ownership registry.
func (dt *Datetime) Scope() *Scope { return dt.scope }

// DateField exposes the date member for rendering.
func (dt *Datetime) DateField() *field.Controller[value.Date] { return dt.date }

// TimeField exposes the time member for rendering.
func (dt *Datetime) TimeField() *field.Controller[value.TimeOfDay] { return dt.time }

// FocusInput reports which member owns focus.
func (dt *Datetime) FocusInput() FocusInput { return dt.focus }

// Focused reports whether any member is focused.
func (dt *Datetime) Focused() bool { return dt.date.Focused() || dt.time.Focused() }

// Value returns the last value known outward.
func (dt *Datetime) Value() value.Value[time.Time] { return dt.external }

// Committed returns the last committed value.
func (dt *Datetime) Committed() value.Value[time.Time] { return dt.committed }

// Current derives the value from the members' buffers.
func (dt *Datetime) Current() value.Value[time.Time] {
	return dt.derive(dt.date.Current(), dt.time.Current())
}

// Flush derives the value the members would commit, without side effects.
func (dt *Datetime) Flush() value.Value[time.Time] {
	return dt.derive(dt.date.Flush(), dt.time.Flush())
}

// SetOnChange replaces the change callback.
func (dt *Datetime) SetOnChange(fn field.ChangeFunc[time.Time]) { dt.onChange = fn }

// Focus focuses the date member.
func (dt *Datetime) Focus() { dt.FocusMember(dt.date.ID()) }

// FocusMember focuses the member owning id.
func (dt *Datetime) FocusMember(id string) {
	if dt.Disabled() {
		return
	}
	switch id {
	case dt.date.ID():
		dt.focus = FocusDate
		dt.date.Focus()
	case dt.time.ID():
		dt.focus = FocusTime
		dt.time.Focus()
	}
}

// BlurMember handles a member blur. A move to another member of the scope
// only settles the member that lost focus; anything else commits.
func (dt *Datetime) BlurMember(id, next string) {
	if !dt.scope.Contains(id) {
		return
	}
	if dt.scope.Contains(next) {
		if id != next {
			dt.member(id).Blur()
			dt.FocusMember(next)
		}
		return
	}
	dt.commit()
}

// Blur commits the composite when any member is focused.
func (dt *Datetime) Blur() {
	if !dt.Focused() {
		return
	}
	dt.commit()
}

// SelectDate routes a calendar click to the date member.
func (dt *Datetime) SelectDate(d value.Date) {
	dt.moveTo(dt.date.ID())
	dt.date.PickerSelect(d)
}

// SelectTime routes a time-grid click to the time member.
func (dt *Datetime) SelectTime(t value.TimeOfDay) {
	dt.moveTo(dt.time.ID())
	dt.time.PickerSelect(t)
}

func (dt *Datetime) moveTo(id string) {
	var current string
	switch {
	case dt.date.Focused():
		current = dt.date.ID()
	case dt.time.Focused():
		current = dt.time.ID()
	}
	switch current {
	case id:
	case "":
		dt.FocusMember(id)
	default:
		dt.BlurMember(current, id)
	}
}

// SetValue applies an external value change with the same echo rules as a
// single field.
func (dt *Datetime) SetValue(v value.Value[time.Time]) {
	if !dt.Focused() {
		dt.external = v
		dt.committed = v
		dt.reseed(v)
		return
	}
	if value.Equal(v, dt.external, value.EqualInstant) {
		return
	}
	dt.external = v
	if !v.IsUnresolved() {
		dt.committed = v
	}
	datePart, timePart := dt.split(v)
	dt.committing = true
	dt.date.SetValue(datePart)
	dt.time.SetValue(timePart)
	dt.committing = false
}

// SetDisabled disables both members; a focused composite commits first.
func (dt *Datetime) SetDisabled(disabled bool) {
	if disabled {
		dt.Blur()
	}
	dt.date.SetDisabled(disabled)
	dt.time.SetDisabled(disabled)
}

// Disabled reports whether the composite ignores interaction.
func (dt *Datetime) Disabled() bool { return dt.date.Disabled() }

func (dt *Datetime) member(id string) interface{ Blur() } {
	if id == dt.time.ID() {
		return dt.time
	}
	return dt.date
}

func (dt *Datetime) memberChanged() {
	if dt.committing {
		return
	}
	v := dt.Current()
	dt.external = v
	dt.emit(v, false)
}

func (dt *Datetime) commit() {
	v := dt.Flush()

	dt.committing = true
	dt.date.Blur()
	dt.time.Blur()
	dt.committing = false

	dt.focus = FocusNone
	dt.external = v
	dt.committed = v
	dt.reseed(v)
	dt.emit(v, true)
}

func (dt *Datetime) reseed(v value.Value[time.Time]) {
	datePart, timePart := dt.split(v)
	dt.committing = true
	dt.date.SetValue(datePart)
	dt.time.SetValue(timePart)
	dt.committing = false
}

func (dt *Datetime) split(v value.Value[time.Time]) (value.Value[value.Date], value.Value[value.TimeOfDay]) {
	switch {
	case v.IsEmpty():
		return value.Empty[value.Date](), value.Empty[value.TimeOfDay]()
	case v.IsUnresolved():
		return value.Unresolved[value.Date](), value.Unresolved[value.TimeOfDay]()
	}
	t, _ := v.Get()
	d, tod := value.Split(t.In(dt.loc))
	return value.Of(d), value.Of(tod)
}

// derive applies the completion rule: both parts combine, a lone date takes
// DefaultTime, a lone time takes DefaultDate, two empties are empty and any
// unresolved part leaves the whole unresolved.
func (dt *Datetime) derive(d value.Value[value.Date], t value.Value[value.TimeOfDay]) value.Value[time.Time] {
	if d.IsUnresolved() || t.IsUnresolved() {
		return value.Unresolved[time.Time]()
	}
	if d.IsEmpty() && t.IsEmpty() {
		return value.Empty[time.Time]()
	}
	date, ok := d.Get()
	if !ok {
		date = dt.fallbackDate()
	}
	tod := t.OrElse(dt.defaultTime)
	return value.Of(value.Combine(date, tod, dt.loc))
}

func (dt *Datetime) fallbackDate() value.Date {
	if d, ok := dt.defaultDate.Get(); ok {
		return d
	}
	return value.DateOf(dt.now.Now().In(dt.loc))
}

func (dt *Datetime) emit(v value.Value[time.Time], wasBlur bool) {
	if dt.onChange != nil {
		dt.onChange(v, wasBlur)
	}
}
