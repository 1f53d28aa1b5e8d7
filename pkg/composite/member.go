package composite

import (
	"slices"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/value"
)

// Member is the surface a composite needs from each part. Both
// *field.Controller[T] and *Datetime implement it, so composites nest.
type Member[T any] interface {
	IDs() []string
	Focus()
	Blur()
	Focused() bool
	Flush() value.Value[T]
	Current() value.Value[T]
	Value() value.Value[T]
	SetValue(v value.Value[T])
	SetDisabled(disabled bool)
	SetOnChange(fn field.ChangeFunc[T])
}

// nestedMember is implemented by members that own several focusable parts.
type nestedMember interface {
	FocusMember(id string)
	BlurMember(id, next string)
}

var (
	_ Member[value.Date] = (*field.Controller[value.Date])(nil)
	_ nestedMember       = (*Datetime)(nil)
)

func owns[T any](m Member[T], id string) bool {
	return slices.Contains(m.IDs(), id)
}
