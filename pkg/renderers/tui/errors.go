package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSearchTimeout is returned when an option search does not answer in
	// time.
	ErrSearchTimeout = errors.New("tui: search timed out")
)
