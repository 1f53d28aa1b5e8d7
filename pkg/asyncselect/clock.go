package asyncselect

import "time"

// Timer is the part of *time.Timer the debouncer uses.
type Timer interface {
	Stop() bool
}

// Clock schedules debounced searches. Tests swap in a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
