// Package picker holds the popup synchronisation rules shared by every
// controller: when a picker is visible, what Enter does for each picker kind,
// and how the highlighted candidate moves through a filtered list.
package picker

// Kind identifies the popup surface attached to a field.
type Kind int

const (
	// KindNone means the field has no popup.
	KindNone Kind = iota
	// KindCalendar is a day/month grid where a click already commits.
	KindCalendar
	// KindList is an option dropdown.
	KindList
	// KindTimeGrid is a list of wall-clock slots.
	KindTimeGrid
)

func (k Kind) String() string {
	switch k {
	case KindCalendar:
		return "calendar"
	case KindList:
		return "list"
	case KindTimeGrid:
		return "time-grid"
	default:
		return "none"
	}
}

// AcceptsOnEnter reports whether Enter commits the highlighted candidate
// (list-like pickers) rather than simply closing the popup.
func (k Kind) AcceptsOnEnter() bool {
	return k == KindList || k == KindTimeGrid
}

// Visible is the single visibility rule for every popup.
func Visible(focused, open, disabled bool) bool {
	return focused && open && !disabled
}

// Navigator tracks the highlighted candidate inside the currently filtered
// list. The index is independent of the committed value; -1 means nothing is
// highlighted.
type Navigator struct {
	index int
	count int
}

// NewNavigator returns a navigator with nothing highlighted.
func NewNavigator() Navigator {
	return Navigator{index: -1}
}

// Reset clears the highlight and records the new candidate count.
func (n *Navigator) Reset(count int) {
	n.count = max(count, 0)
	n.index = -1
}

// Sync records a new candidate count and keeps the highlight in range.
func (n *Navigator) Sync(count int) {
	n.count = max(count, 0)
	if n.index >= n.count {
		n.index = n.count - 1
	}
}

// Move shifts the highlight by delta, wrapping at both ends. Moving down from
// "nothing" lands on the first candidate; moving up lands on the last.
func (n *Navigator) Move(delta int) int {
	if n.count == 0 {
		n.index = -1
		return n.index
	}
	if n.index < 0 {
		if delta >= 0 {
			n.index = 0
		} else {
			n.index = n.count - 1
		}
		return n.index
	}
	n.index = ((n.index+delta)%n.count + n.count) % n.count
	return n.index
}

// Highlight sets the index directly (clamped; -1 clears).
func (n *Navigator) Highlight(index int) {
	if index < 0 || index >= n.count {
		n.index = -1
		return
	}
	n.index = index
}

// Index returns the highlighted index or -1.
func (n Navigator) Index() int {
	if n.index >= n.count {
		return -1
	}
	return n.index
}

// Count returns the candidate count.
func (n Navigator) Count() int { return n.count }
