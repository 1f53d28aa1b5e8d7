package value

import "fmt"

// State enumerates the three value states.
type State uint8

const (
	// StateUnresolved is the zero state: the text does not (yet) describe a
	// value, or the caller has no opinion yet.
	StateUnresolved State = iota
	// StateEmpty marks an intentional absence of value.
	StateEmpty
	// StateConcrete carries a typed value.
	StateConcrete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateConcrete:
		return "concrete"
	default:
		return "unresolved"
	}
}

// Value is a tagged union over Empty, Unresolved and Concrete(T). The zero
// Value is Unresolved.
type Value[T any] struct {
	state State
	v     T
}

// Empty returns the explicit blank value.
func Empty[T any]() Value[T] {
	return Value[T]{state: StateEmpty}
}

// Unresolved returns the "do not persist yet" value.
func Unresolved[T any]() Value[T] {
	return Value[T]{state: StateUnresolved}
}

// Of wraps a concrete value.
func Of[T any](v T) Value[T] {
	return Value[T]{state: StateConcrete, v: v}
}

// State reports the value state.
func (v Value[T]) State() State { return v.state }

// IsEmpty reports whether the value is explicitly blank.
func (v Value[T]) IsEmpty() bool { return v.state == StateEmpty }

// IsUnresolved reports whether the value is pending resolution.
func (v Value[T]) IsUnresolved() bool { return v.state == StateUnresolved }

// IsConcrete reports whether the value carries data.
func (v Value[T]) IsConcrete() bool { return v.state == StateConcrete }

// Get returns the concrete value and true, or the zero T and false.
func (v Value[T]) Get() (T, bool) {
	if v.state != StateConcrete {
		var zero T
		return zero, false
	}
	return v.v, true
}

// OrElse returns the concrete value or fallback.
func (v Value[T]) OrElse(fallback T) T {
	if v.state != StateConcrete {
		return fallback
	}
	return v.v
}

func (v Value[T]) String() string {
	if v.state == StateConcrete {
		return fmt.Sprintf("%v", v.v)
	}
	return "<" + v.state.String() + ">"
}

// Equal compares two values by state and, when both are concrete, by eq.
func Equal[T any](a, b Value[T], eq func(T, T) bool) bool {
	if a.state != b.state {
		return false
	}
	if a.state != StateConcrete {
		return true
	}
	if eq == nil {
		return false
	}
	return eq(a.v, b.v)
}

// EqualComparable is Equal for comparable payloads.
func EqualComparable[T comparable](a, b Value[T]) bool {
	return Equal(a, b, func(x, y T) bool { return x == y })
}

// Map converts a concrete payload, keeping the Empty/Unresolved state.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if v.state != StateConcrete {
		return Value[U]{state: v.state}
	}
	return Of(fn(v.v))
}

// Range pairs two independently nullable values.
type Range[T any] struct {
	Start Value[T]
	End   Value[T]
}

// IsEmpty reports whether both sides are blank.
func (r Range[T]) IsEmpty() bool {
	return r.Start.IsEmpty() && r.End.IsEmpty()
}

// IsConcrete reports whether both sides carry data.
func (r Range[T]) IsConcrete() bool {
	return r.Start.IsConcrete() && r.End.IsConcrete()
}

// IsUnresolved reports whether either side is unresolved.
func (r Range[T]) IsUnresolved() bool {
	return r.Start.IsUnresolved() || r.End.IsUnresolved()
}

// Swapped returns the range with its sides exchanged.
func (r Range[T]) Swapped() Range[T] {
	return Range[T]{Start: r.End, End: r.Start}
}

// EqualRange compares two ranges side by side.
func EqualRange[T any](a, b Range[T], eq func(T, T) bool) bool {
	return Equal(a.Start, b.Start, eq) && Equal(a.End, b.End, eq)
}
