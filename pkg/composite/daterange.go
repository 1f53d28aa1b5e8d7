package composite

import (
	"time"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/value"
)

// DateRangeConfig configures NewDateRange.
type DateRangeConfig struct {
	Value    value.Range[value.Date]
	OnChange RangeChangeFunc[value.Date]
	// DefaultDays is the offset used to fill a missing side.
	DefaultDays int
	Layouts     []string
	Now         value.Clock
}

// DateRange is a Range over two date fields.
type DateRange struct {
	*Range[value.Date]
	startField *field.Controller[value.Date]
	endField   *field.Controller[value.Date]
}

// NewDateRange builds the range and its start and end date fields.
func NewDateRange(cfg DateRangeConfig, opts ...Option) *DateRange {
	s := resolveSettings(opts)
	start := field.NewDate(field.DateConfig{
		Value:   cfg.Value.Start,
		Layouts: cfg.Layouts,
		Now:     cfg.Now,
	}, s.memberOptions("start")...)
	end := field.NewDate(field.DateConfig{
		Value:   cfg.Value.End,
		Layouts: cfg.Layouts,
		Now:     cfg.Now,
	}, s.memberOptions("end")...)

	days := cfg.DefaultDays
	r := NewRange(RangeConfig[value.Date]{
		Start:    start,
		End:      end,
		OnChange: cfg.OnChange,
		Offset: func(known value.Date, forward bool) value.Date {
			if forward {
				return known.AddDays(days)
			}
			return known.AddDays(-days)
		},
		Less:  value.Date.Before,
		Equal: func(a, b value.Date) bool { return a == b },
	}, WithID(s.id), WithDisabled(s.disabled))
	return &DateRange{Range: r, startField: start, endField: end}
}

// StartField exposes the start member for rendering.
func (dr *DateRange) StartField() *field.Controller[value.Date] { return dr.startField }

// EndField exposes the end member for rendering.
func (dr *DateRange) EndField() *field.Controller[value.Date] { return dr.endField }

// SelectDate applies a calendar click. While the start side is active the
// click fills the start and moves focus to the end; on the end side it fills
// the end.
func (dr *DateRange) SelectDate(d value.Date) {
	if dr.Side() == FocusEnd {
		dr.endField.PickerSelect(d)
		return
	}
	if !dr.Focused() {
		dr.Focus()
	}
	dr.startField.PickerSelect(d)
	dr.BlurMember(dr.startField.ID(), dr.endField.ID())
}

// DatetimeRangeConfig configures NewDatetimeRange.
type DatetimeRangeConfig struct {
	Value    value.Range[time.Time]
	OnChange RangeChangeFunc[time.Time]
	// DefaultDuration is the offset used to fill a missing side.
	DefaultDuration time.Duration
	Location        *time.Location
	DefaultTime     value.TimeOfDay
	Now             value.Clock
	DateLayouts     []string
	TimeLayouts     []string
	TimeInterval    int
}

// DatetimeRange is a Range whose sides are Datetime composites.
type DatetimeRange struct {
	*Range[time.Time]
	startSide *Datetime
	endSide   *Datetime
}

// NewDatetimeRange builds the range and both datetime sides.
func NewDatetimeRange(cfg DatetimeRangeConfig, opts ...Option) *DatetimeRange {
	s := resolveSettings(opts)
	side := func(v value.Value[time.Time], suffix string) *Datetime {
		return NewDatetime(DatetimeConfig{
			Value:        v,
			Location:     cfg.Location,
			DefaultTime:  cfg.DefaultTime,
			Now:          cfg.Now,
			DateLayouts:  cfg.DateLayouts,
			TimeLayouts:  cfg.TimeLayouts,
			TimeInterval: cfg.TimeInterval,
		}, s.child(suffix)...)
	}
	start := side(cfg.Value.Start, "start")
	end := side(cfg.Value.End, "end")

	offset := cfg.DefaultDuration
	r := NewRange(RangeConfig[time.Time]{
		Start:    start,
		End:      end,
		OnChange: cfg.OnChange,
		Offset: func(known time.Time, forward bool) time.Time {
			if forward {
				return known.Add(offset)
			}
			return known.Add(-offset)
		},
		Less:  time.Time.Before,
		Equal: value.EqualInstant,
	}, WithID(s.id), WithDisabled(s.disabled))
	return &DatetimeRange{Range: r, startSide: start, endSide: end}
}

// StartSide exposes the start composite.
func (dr *DatetimeRange) StartSide() *Datetime { return dr.startSide }

// EndSide exposes the end composite.
func (dr *DatetimeRange) EndSide() *Datetime { return dr.endSide }

// FocusInput combines the active side with the active part inside it.
func (dr *DatetimeRange) FocusInput() FocusInput {
	switch dr.Side() {
	case FocusStart:
		return nested(FocusStart, dr.startSide.FocusInput())
	case FocusEnd:
		return nested(FocusEnd, dr.endSide.FocusInput())
	default:
		return FocusNone
	}
}

// SelectDate routes a calendar click to the active side.
func (dr *DatetimeRange) SelectDate(d value.Date) {
	dr.active().SelectDate(d)
}

// SelectTime routes a time-grid click to the active side.
func (dr *DatetimeRange) SelectTime(t value.TimeOfDay) {
	dr.active().SelectTime(t)
}

func (dr *DatetimeRange) active() *Datetime {
	if dr.Side() == FocusEnd {
		return dr.endSide
	}
	return dr.startSide
}
