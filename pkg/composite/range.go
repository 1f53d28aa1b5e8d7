package composite

import "github.com/goliatone/go-formfield/pkg/value"

// RangeChangeFunc receives range previews and commits.
type RangeChangeFunc[T any] func(r value.Range[T], wasBlur bool)

// RangeConfig wires two members into a Range.
type RangeConfig[T any] struct {
	Start Member[T]
	End   Member[T]
	// Value is only used when the members were built without one.
	Value    value.Range[T]
	OnChange RangeChangeFunc[T]
	// Offset derives the missing side from the known one: forward derives
	// the end from the start.
	Offset func(known T, forward bool) T
	// Less orders concrete values; a committed range never has End < Start.
	Less  func(a, b T) bool
	Equal func(a, b T) bool
}

// Range keeps two members ordered and fills an empty side from the other.
type Range[T any] struct {
	id       string
	scope    *Scope
	start    Member[T]
	end      Member[T]
	offset   func(known T, forward bool) T
	less     func(a, b T) bool
	equal    func(a, b T) bool
	onChange RangeChangeFunc[T]

	side       FocusInput
	external   value.Range[T]
	committed  value.Range[T]
	committing bool
}

// NewRange builds a range over already constructed members and takes over
// their change callbacks.
func NewRange[T any](cfg RangeConfig[T], opts ...Option) *Range[T] {
	s := resolveSettings(opts)
	r := &Range[T]{
		id:       s.id,
		start:    cfg.Start,
		end:      cfg.End,
		offset:   cfg.Offset,
		less:     cfg.Less,
		equal:    cfg.Equal,
		onChange: cfg.OnChange,
	}
	if r.equal == nil {
		r.equal = func(a, b T) bool { return !r.lessThan(a, b) && !r.lessThan(b, a) }
	}
	r.scope = NewScope(r.start.IDs()...)
	r.scope.Register(r.end.IDs()...)

	initial := value.Range[T]{Start: r.start.Value(), End: r.end.Value()}
	if initial.IsUnresolved() && !cfg.Value.IsUnresolved() {
		initial = cfg.Value
		r.reseed(initial)
	}
	r.external = initial
	r.committed = initial

	r.start.SetOnChange(func(value.Value[T], bool) { r.memberChanged() })
	r.end.SetOnChange(func(value.Value[T], bool) { r.memberChanged() })
	if s.disabled {
		r.SetDisabled(true)
	}
	return r
}

// ID returns the range id.
func (r *Range[T]) ID() string { return r.id }

// IDs lists every member id, nested ones included.
func (r *Range[T]) IDs() []string { return r.scope.IDs() }

// Scope returns the ownership registry.
func (r *Range[T]) Scope() *Scope { return r.scope }

// Side reports which side owns focus (FocusStart, FocusEnd or FocusNone).
func (r *Range[T]) Side() FocusInput { return r.side }

// Focused reports whether either side is focused.
func (r *Range[T]) Focused() bool { return r.start.Focused() || r.end.Focused() }

// Value returns the last range known outward.
func (r *Range[T]) Value() value.Range[T] { return r.external }

// Committed returns the last committed range.
func (r *Range[T]) Committed() value.Range[T] { return r.committed }

// Current derives the range from the members' buffers.
func (r *Range[T]) Current() value.Range[T] {
	return r.derive(value.Range[T]{Start: r.start.Current(), End: r.end.Current()})
}

// Flush returns the range a commit would emit, without side effects.
func (r *Range[T]) Flush() value.Range[T] {
	return r.order(r.derive(value.Range[T]{Start: r.start.Flush(), End: r.end.Flush()}))
}

// SetOnChange replaces the change callback.
func (r *Range[T]) SetOnChange(fn RangeChangeFunc[T]) { r.onChange = fn }

// Focus focuses the start side. A disabled range keeps FocusNone.
func (r *Range[T]) Focus() {
	r.start.Focus()
	if r.start.Focused() {
		r.side = FocusStart
	}
}

// FocusMember focuses the part owning id.
func (r *Range[T]) FocusMember(id string) {
	m, side := r.owner(id)
	if m == nil {
		return
	}
	if n, ok := m.(nestedMember); ok {
		n.FocusMember(id)
	} else {
		m.Focus()
	}
	if m.Focused() {
		r.side = side
	}
}

// BlurMember handles a part blur. Moving within one side is delegated to
// that side; moving to the other side settles the side that lost focus;
// leaving the scope commits the whole range.
func (r *Range[T]) BlurMember(id, next string) {
	m, _ := r.owner(id)
	if m == nil {
		return
	}
	if !r.scope.Contains(next) {
		r.commit()
		return
	}
	target, _ := r.owner(next)
	if target == m {
		if n, ok := m.(nestedMember); ok {
			n.BlurMember(id, next)
		}
		return
	}
	m.Blur()
	r.FocusMember(next)
}

// Blur commits the range when either side is focused.
func (r *Range[T]) Blur() {
	if !r.Focused() {
		return
	}
	r.commit()
}

// SetValue applies an external range with the single-field echo rules.
func (r *Range[T]) SetValue(v value.Range[T]) {
	if !r.Focused() {
		r.external = v
		r.committed = v
		r.reseed(v)
		return
	}
	if value.EqualRange(v, r.external, r.equal) {
		return
	}
	r.external = v
	if !v.IsUnresolved() {
		r.committed = v
	}
	r.reseed(v)
}

// SetDisabled disables both sides; a focused range commits first.
func (r *Range[T]) SetDisabled(disabled bool) {
	if disabled {
		r.Blur()
	}
	r.start.SetDisabled(disabled)
	r.end.SetDisabled(disabled)
}

func (r *Range[T]) owner(id string) (Member[T], FocusInput) {
	switch {
	case owns(r.start, id):
		return r.start, FocusStart
	case owns(r.end, id):
		return r.end, FocusEnd
	default:
		return nil, FocusNone
	}
}

func (r *Range[T]) memberChanged() {
	if r.committing {
		return
	}
	v := r.Current()
	r.external = v
	r.emit(v, false)
}

func (r *Range[T]) commit() {
	v := r.Flush()

	r.committing = true
	r.start.Blur()
	r.end.Blur()
	r.committing = false

	r.side = FocusNone
	r.external = v
	r.committed = v
	r.reseed(v)
	r.emit(v, true)
}

func (r *Range[T]) reseed(v value.Range[T]) {
	r.committing = true
	r.start.SetValue(v.Start)
	r.end.SetValue(v.End)
	r.committing = false
}

// derive fills a lone empty side from the concrete one.
func (r *Range[T]) derive(v value.Range[T]) value.Range[T] {
	if r.offset == nil {
		return v
	}
	start, startOK := v.Start.Get()
	end, endOK := v.End.Get()
	switch {
	case startOK && v.End.IsEmpty():
		v.End = value.Of(r.offset(start, true))
	case endOK && v.Start.IsEmpty():
		v.Start = value.Of(r.offset(end, false))
	}
	return v
}

// order swaps concrete sides so Start <= End.
func (r *Range[T]) order(v value.Range[T]) value.Range[T] {
	start, startOK := v.Start.Get()
	end, endOK := v.End.Get()
	if startOK && endOK && r.lessThan(end, start) {
		return v.Swapped()
	}
	return v
}

func (r *Range[T]) lessThan(a, b T) bool {
	if r.less == nil {
		return false
	}
	return r.less(a, b)
}

func (r *Range[T]) emit(v value.Range[T], wasBlur bool) {
	if r.onChange != nil {
		r.onChange(v, wasBlur)
	}
}
