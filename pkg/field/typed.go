package field

import (
	"strings"
	"time"

	"github.com/goliatone/go-formfield/pkg/picker"
	"github.com/goliatone/go-formfield/pkg/value"
)

// DefaultTimeInterval is the spacing of time-grid candidates in minutes.
const DefaultTimeInterval = 30

func withKind(kind picker.Kind, opts []Option) []Option {
	return append([]Option{WithPickerKind(kind)}, opts...)
}

func equalDate(a, b value.Date) bool { return a == b }

// DateConfig configures NewDate.
type DateConfig struct {
	Value    value.Value[value.Date]
	OnChange ChangeFunc[value.Date]
	// Layouts overrides the accepted input patterns; the first one formats.
	Layouts []string
	// Codec replaces the layout-based codec entirely.
	Codec    value.Codec[value.Date]
	StepDays int
	Now      value.Clock
}

// NewDate builds a date field with a calendar picker.
func NewDate(cfg DateConfig, opts ...Option) *Controller[value.Date] {
	codec := cfg.Codec
	if codec == nil {
		codec = value.DateCodec{Layouts: cfg.Layouts}
	}
	return New(Config[value.Date]{
		Codec:    codec,
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Stepper:  value.DateStepper{Days: cfg.StepDays, Now: cfg.Now},
		Equal:    equalDate,
	}, withKind(picker.KindCalendar, opts)...)
}

// TimeConfig configures NewTime.
type TimeConfig struct {
	Value    value.Value[value.TimeOfDay]
	OnChange ChangeFunc[value.TimeOfDay]
	Layouts  []string
	Codec    value.Codec[value.TimeOfDay]
	// StepMinutes is the arrow-key step (default 1).
	StepMinutes int
	// Interval spaces the time-grid candidates (default 30 minutes).
	Interval int
	// Start is the stepping base when the field is empty.
	Start value.TimeOfDay
}

// NewTime builds a time field with a time-grid picker.
func NewTime(cfg TimeConfig, opts ...Option) *Controller[value.TimeOfDay] {
	codec := cfg.Codec
	if codec == nil {
		codec = value.TimeCodec{Layouts: cfg.Layouts}
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultTimeInterval
	}
	slots := TimeSlots(interval)
	return New(Config[value.TimeOfDay]{
		Codec:    codec,
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Stepper:  value.TimeStepper{Minutes: cfg.StepMinutes, Start: cfg.Start},
		Candidates: func(query string) []value.TimeOfDay {
			return filterSlots(slots, codec, query)
		},
		Equal: func(a, b value.TimeOfDay) bool { return a == b },
	}, withKind(picker.KindTimeGrid, opts)...)
}

// TimeSlots lists every grid slot of a day at the given minute interval.
func TimeSlots(interval int) []value.TimeOfDay {
	if interval <= 0 {
		interval = DefaultTimeInterval
	}
	out := make([]value.TimeOfDay, 0, 24*60/interval)
	for minute := 0; minute < 24*60; minute += interval {
		out = append(out, value.NewTimeOfDay(0, minute, 0, 0))
	}
	return out
}

func filterSlots(slots []value.TimeOfDay, codec value.Codec[value.TimeOfDay], query string) []value.TimeOfDay {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]value.TimeOfDay(nil), slots...)
	}
	var out []value.TimeOfDay
	for _, slot := range slots {
		if strings.HasPrefix(codec.Format(value.Of(slot)), query) {
			out = append(out, slot)
		}
	}
	if len(out) == 0 {
		if parsed, ok := codec.Parse(query).Get(); ok {
			return []value.TimeOfDay{parsed}
		}
	}
	return out
}

// DurationConfig configures NewDuration.
type DurationConfig struct {
	Value    value.Value[value.Duration]
	OnChange ChangeFunc[value.Duration]
	Codec    value.Codec[value.Duration]
	// Unit is the arrow-key step (default one minute).
	Unit  value.Duration
	Start value.Duration
}

// NewDuration builds a free-form duration field without a picker.
func NewDuration(cfg DurationConfig, opts ...Option) *Controller[value.Duration] {
	codec := cfg.Codec
	if codec == nil {
		codec = value.DurationCodec{}
	}
	return New(Config[value.Duration]{
		Codec:    codec,
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Stepper:  value.DurationStepper{Unit: cfg.Unit, Start: cfg.Start},
		Equal:    func(a, b value.Duration) bool { return a == b },
	}, withKind(picker.KindNone, opts)...)
}

// MonthConfig configures NewMonth.
type MonthConfig struct {
	Value    value.Value[value.Month]
	OnChange ChangeFunc[value.Month]
	Layouts  []string
	Codec    value.Codec[value.Month]
	Now      value.Clock
}

// NewMonth builds a year+month field with a calendar picker.
func NewMonth(cfg MonthConfig, opts ...Option) *Controller[value.Month] {
	codec := cfg.Codec
	if codec == nil {
		codec = value.MonthCodec{Layouts: cfg.Layouts}
	}
	return New(Config[value.Month]{
		Codec:    codec,
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Stepper:  value.MonthStepper{Now: cfg.Now},
		Equal:    func(a, b value.Month) bool { return a == b },
	}, withKind(picker.KindCalendar, opts)...)
}

// CalendarMonthConfig configures NewCalendarMonth.
type CalendarMonthConfig struct {
	Value    value.Value[value.CalendarMonth]
	OnChange ChangeFunc[value.CalendarMonth]
	Names    *value.MonthNames
	Now      value.Clock
}

// NewCalendarMonth builds a month-of-year field with a list picker.
func NewCalendarMonth(cfg CalendarMonthConfig, opts ...Option) *Controller[value.CalendarMonth] {
	codec := value.CalendarMonthCodec{Names: cfg.Names}
	return New(Config[value.CalendarMonth]{
		Codec:    codec,
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Stepper:  value.CalendarMonthStepper{Now: cfg.Now},
		Candidates: func(query string) []value.CalendarMonth {
			query = strings.ToLower(strings.TrimSpace(query))
			var out []value.CalendarMonth
			for m := value.CalendarMonth(time.January); m <= value.CalendarMonth(time.December); m++ {
				if query == "" || strings.HasPrefix(strings.ToLower(codec.Format(value.Of(m))), query) {
					out = append(out, m)
				}
			}
			if len(out) == 0 {
				if parsed, ok := codec.Parse(query).Get(); ok {
					out = append(out, parsed)
				}
			}
			return out
		},
		Equal: func(a, b value.CalendarMonth) bool { return a == b },
	}, withKind(picker.KindList, opts)...)
}

// NumberConfig configures NewNumber.
type NumberConfig struct {
	Value    value.Value[float64]
	OnChange ChangeFunc[float64]
	Min      *float64
	Max      *float64
	Step     *float64
	// Start is the stepping base when the field is empty.
	Start float64
}

// NewNumber builds a numeric field whose parse rejects out-of-bounds and
// off-step input.
func NewNumber(cfg NumberConfig, opts ...Option) *Controller[float64] {
	return New(Config[float64]{
		Codec:    value.NumberCodec{Min: cfg.Min, Max: cfg.Max, Step: cfg.Step},
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Stepper:  value.NumberStepper{Min: cfg.Min, Max: cfg.Max, Increment: cfg.Step, Start: cfg.Start},
		Equal:    func(a, b float64) bool { return a == b },
	}, withKind(picker.KindNone, opts)...)
}

// TextConfig configures NewText.
type TextConfig struct {
	Value    value.Value[string]
	OnChange ChangeFunc[string]
}

// NewText builds a free-text field. Surrounding blanks are trimmed on parse
// and a blank buffer is Empty.
func NewText(cfg TextConfig, opts ...Option) *Controller[string] {
	return New(Config[string]{
		Codec: value.CodecFuncs[string]{
			ParseFunc:  value.Of[string],
			FormatFunc: func(s string) string { return s },
		},
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Equal:    func(a, b string) bool { return a == b },
	}, withKind(picker.KindNone, opts)...)
}

// ToggleConfig configures NewToggle.
type ToggleConfig struct {
	Value    value.Value[bool]
	OnChange ChangeFunc[bool]
}

// NewToggle builds a yes/no field. Arrow keys flip the value and the list
// picker offers both answers.
func NewToggle(cfg ToggleConfig, opts ...Option) *Controller[bool] {
	codec := value.BoolCodec{}
	return New(Config[bool]{
		Codec:    codec,
		Value:    cfg.Value,
		OnChange: cfg.OnChange,
		Stepper:  value.BoolStepper{},
		Candidates: func(query string) []bool {
			query = strings.ToLower(strings.TrimSpace(query))
			var out []bool
			for _, b := range []bool{true, false} {
				if query == "" || strings.HasPrefix(codec.Format(value.Of(b)), query) {
					out = append(out, b)
				}
			}
			return out
		},
		Equal: func(a, b bool) bool { return a == b },
	}, withKind(picker.KindList, opts)...)
}
