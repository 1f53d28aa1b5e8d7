package composite

// FocusInput names the sub-field that currently owns keyboard focus. Picker
// clicks are routed with it and range derivation uses it to tell the free side
// from the fixed one.
type FocusInput int

const (
	FocusNone FocusInput = iota
	FocusDate
	FocusTime
	FocusStart
	FocusEnd
	FocusStartDate
	FocusStartTime
	FocusEndDate
	FocusEndTime
)

var focusNames = map[FocusInput]string{
	FocusNone:      "none",
	FocusDate:      "date",
	FocusTime:      "time",
	FocusStart:     "start",
	FocusEnd:       "end",
	FocusStartDate: "start-date",
	FocusStartTime: "start-time",
	FocusEndDate:   "end-date",
	FocusEndTime:   "end-time",
}

func (f FocusInput) String() string {
	if name, ok := focusNames[f]; ok {
		return name
	}
	return "none"
}

// nested maps a side plus the focus inside a datetime side onto the combined
// enum.
func nested(side, inner FocusInput) FocusInput {
	switch {
	case side == FocusStart && inner == FocusDate:
		return FocusStartDate
	case side == FocusStart && inner == FocusTime:
		return FocusStartTime
	case side == FocusEnd && inner == FocusDate:
		return FocusEndDate
	case side == FocusEnd && inner == FocusTime:
		return FocusEndTime
	default:
		return side
	}
}
