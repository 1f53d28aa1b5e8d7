package widgets

import "errors"

var (
	// ErrUnknownWidget is returned when no control can be built for a widget.
	ErrUnknownWidget = errors.New("widgets: unknown widget")
	// ErrInvalidValue wraps initial values that do not decode for a widget.
	ErrInvalidValue = errors.New("widgets: invalid value")
	// ErrUnknownChoice is returned by Choose for values missing from the
	// options.
	ErrUnknownChoice = errors.New("widgets: unknown choice")
)
