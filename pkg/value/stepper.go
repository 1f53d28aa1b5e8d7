package value

import (
	"math"
	"time"
)

// Stepper moves a value one unit for arrow-key stepping. Fallback supplies the
// base when the field has no concrete value.
type Stepper[T any] interface {
	Step(base T, direction int) T
	Fallback() T
}

// Clock returns the current time; a nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// DateStepper moves by Days (default 1). The fallback is today.
type DateStepper struct {
	Days int
	Now  Clock
}

// Step implements Stepper.
func (s DateStepper) Step(base Date, direction int) Date {
	days := s.Days
	if days <= 0 {
		days = 1
	}
	return base.AddDays(sign(direction) * days)
}

// Fallback implements Stepper.
func (s DateStepper) Fallback() Date {
	return DateOf(s.Now.Now())
}

// TimeStepper moves along a grid of Minutes (default 1), snapping unaligned
// values to the neighbouring grid line and wrapping at the day boundary.
type TimeStepper struct {
	Minutes int
	Start   TimeOfDay
}

// Step implements Stepper.
func (s TimeStepper) Step(base TimeOfDay, direction int) TimeOfDay {
	minutes := s.Minutes
	if minutes <= 0 {
		minutes = 1
	}
	unit := int64(minutes) * int64(Minute)
	return wrapTime(snap(int64(base), unit, direction))
}

// Fallback implements Stepper.
func (s TimeStepper) Fallback() TimeOfDay {
	return s.Start
}

// DurationStepper moves by Unit (default one minute) on a grid.
type DurationStepper struct {
	Unit  Duration
	Start Duration
}

// Step implements Stepper.
func (s DurationStepper) Step(base Duration, direction int) Duration {
	unit := s.Unit
	if unit <= 0 {
		unit = Minute
	}
	return Duration(snap(int64(base), int64(unit), direction))
}

// Fallback implements Stepper.
func (s DurationStepper) Fallback() Duration {
	return s.Start
}

// MonthStepper moves by one month; the fallback is the current month.
type MonthStepper struct {
	Now Clock
}

// Step implements Stepper.
func (s MonthStepper) Step(base Month, direction int) Month {
	return base.AddMonths(sign(direction))
}

// Fallback implements Stepper.
func (s MonthStepper) Fallback() Month {
	return MonthOf(s.Now.Now())
}

// CalendarMonthStepper wraps December into January and back.
type CalendarMonthStepper struct {
	Now Clock
}

// Step implements Stepper.
func (s CalendarMonthStepper) Step(base CalendarMonth, direction int) CalendarMonth {
	return base.Add(sign(direction))
}

// Fallback implements Stepper.
func (s CalendarMonthStepper) Fallback() CalendarMonth {
	return CalendarMonth(s.Now.Now().Month())
}

// NumberStepper moves along the step grid and clamps to the nearest aligned
// value inside the bounds.
type NumberStepper struct {
	Min       *float64
	Max       *float64
	Increment *float64
	Start     float64
}

func (s NumberStepper) step() float64 {
	if s.Increment == nil || *s.Increment <= 0 {
		return 1
	}
	return *s.Increment
}

// Step implements Stepper.
func (s NumberStepper) Step(base float64, direction int) float64 {
	step := s.step()
	places := decimals(step)
	ratio := roundTo(base/step, 9)
	var next float64
	if direction >= 0 {
		next = (math.Floor(ratio) + 1) * step
	} else {
		next = (math.Ceil(ratio) - 1) * step
	}
	if s.Max != nil && next > *s.Max {
		next = math.Floor(roundTo(*s.Max/step, 9)) * step
	}
	if s.Min != nil && next < *s.Min {
		next = math.Ceil(roundTo(*s.Min/step, 9)) * step
	}
	return roundTo(next, places)
}

// Fallback implements Stepper.
func (s NumberStepper) Fallback() float64 {
	start := s.Start
	if s.Min != nil && start < *s.Min {
		start = *s.Min
	}
	if s.Max != nil && start > *s.Max {
		start = *s.Max
	}
	return start
}

// snap moves one grid unit in direction, treating an unaligned base as being
// between two grid lines.
func snap(base, unit int64, direction int) int64 {
	floor := floorDiv(base, unit) * unit
	if direction >= 0 {
		return floor + unit
	}
	if floor == base {
		return base - unit
	}
	return floor
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func sign(direction int) int {
	if direction < 0 {
		return -1
	}
	return 1
}
