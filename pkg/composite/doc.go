// Package composite combines several single-field controllers into one value:
// a date and a time into an instant, two dates or two instants into a range.
//
// Focus moves between sub-fields without committing. The view reports every
// sub-field blur through BlurMember together with the id of the element that
// receives focus next; the composite commits only when that id lies outside
// its Scope. The commit is two-phase: every member is flushed in a fixed
// order, the combined value is derived and ordered, one commit is emitted and
// the members are reseeded from it.
package composite
