package composite

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/value"
)

type call[T any] struct {
	v       T
	wasBlur bool
}

func commits[T any](calls []call[T]) []T {
	var out []T
	for _, c := range calls {
		if c.wasBlur {
			out = append(out, c.v)
		}
	}
	return out
}

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestScope(t *testing.T) {
	s := NewScope("a", "", "b")
	s.Register("c")
	if !s.Contains("a") || !s.Contains("c") {
		t.Fatalf("expected registered ids to be contained")
	}
	if s.Contains("") || s.Contains("z") {
		t.Fatalf("unexpected containment")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	var nilScope *Scope
	if nilScope.Contains("a") {
		t.Fatalf("nil scope owns nothing")
	}
}

func newRecordedDatetime(cfg DatetimeConfig, opts ...Option) (*Datetime, *[]call[value.Value[time.Time]]) {
	calls := &[]call[value.Value[time.Time]]{}
	cfg.OnChange = func(v value.Value[time.Time], wasBlur bool) {
		*calls = append(*calls, call[value.Value[time.Time]]{v: v, wasBlur: wasBlur})
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return NewDatetime(cfg, opts...), calls
}

func TestDatetimeInternalTransferDoesNotCommit(t *testing.T) {
	dt, calls := newRecordedDatetime(DatetimeConfig{DefaultTime: value.NewTimeOfDay(9, 0, 0, 0)}, WithID("when"))
	if diff := cmp.Diff([]string{"when-date", "when-time"}, dt.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	dt.Focus()
	dt.DateField().Input("2024-01-01")
	last := (*calls)[len(*calls)-1]
	if got, _ := last.v.Get(); !got.Equal(utc(2024, 1, 1, 9, 0)) || last.wasBlur {
		t.Fatalf("expected preview with default time, got %+v", last)
	}

	dt.BlurMember("when-date", "when-time")
	if len(commits(*calls)) != 0 {
		t.Fatalf("moving between members must not commit")
	}
	if dt.FocusInput() != FocusTime || !dt.TimeField().Focused() {
		t.Fatalf("expected focus on the time member, got %s", dt.FocusInput())
	}

	dt.TimeField().Input("10:30")
	dt.BlurMember("when-time", "somewhere-else")

	got := commits(*calls)
	if len(got) != 1 {
		t.Fatalf("expected one commit, got %d", len(got))
	}
	if v, _ := got[0].Get(); !v.Equal(utc(2024, 1, 1, 10, 30)) {
		t.Fatalf("unexpected commit %v", got[0])
	}
	if dt.Focused() || dt.FocusInput() != FocusNone {
		t.Fatalf("composite should be unfocused after commit")
	}
}

func TestDatetimeDerivesMissingPart(t *testing.T) {
	t.Run("date only takes default time", func(t *testing.T) {
		dt, calls := newRecordedDatetime(DatetimeConfig{DefaultTime: value.NewTimeOfDay(9, 0, 0, 0)}, WithID("dt"))
		dt.Focus()
		dt.DateField().Input("2024-01-01")
		dt.BlurMember("dt-date", "")

		got := commits(*calls)
		if len(got) != 1 {
			t.Fatalf("expected one commit, got %d", len(got))
		}
		if v, _ := got[0].Get(); !v.Equal(utc(2024, 1, 1, 9, 0)) {
			t.Fatalf("unexpected commit %v", got[0])
		}
		if dt.TimeField().Text() != "09:00" {
			t.Fatalf("derived time should be reseeded, got %q", dt.TimeField().Text())
		}
	})

	t.Run("time only takes today", func(t *testing.T) {
		now := func() time.Time { return utc(2024, 3, 10, 18, 0) }
		dt, calls := newRecordedDatetime(DatetimeConfig{Now: now}, WithID("dt"))
		dt.FocusMember("dt-time")
		dt.TimeField().Input("8:15am")
		dt.Blur()

		got := commits(*calls)
		if v, _ := got[0].Get(); !v.Equal(utc(2024, 3, 10, 8, 15)) {
			t.Fatalf("unexpected commit %v", got[0])
		}
		if dt.DateField().Text() != "2024-03-10" {
			t.Fatalf("derived date should be reseeded, got %q", dt.DateField().Text())
		}
	})

	t.Run("unresolved part keeps preview unresolved", func(t *testing.T) {
		dt, calls := newRecordedDatetime(DatetimeConfig{}, WithID("dt"))
		dt.Focus()
		dt.DateField().Input("2024-13-45")
		if last := (*calls)[len(*calls)-1]; !last.v.IsUnresolved() {
			t.Fatalf("expected unresolved preview, got %v", last.v)
		}
		dt.Blur()
		if got := commits(*calls); !got[0].IsEmpty() {
			t.Fatalf("blur should erase the composite, got %v", got[0])
		}
	})

	t.Run("both empty is empty", func(t *testing.T) {
		dt, _ := newRecordedDatetime(DatetimeConfig{Value: value.Of(utc(2024, 1, 1, 9, 0))})
		dt.SetValue(value.Empty[time.Time]())
		if !dt.Current().IsEmpty() || dt.DateField().Text() != "" {
			t.Fatalf("expected empty composite, got %v", dt.Current())
		}
	})
}

func TestDatetimeCommitsWallClockOnDSTDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	dt, calls := newRecordedDatetime(DatetimeConfig{Location: ny}, WithID("dst"))
	dt.Focus()
	dt.DateField().Input("2024-03-10")
	dt.BlurMember("dst-date", "dst-time")
	dt.TimeField().Input("09:00")
	dt.BlurMember("dst-time", "")

	got := commits(*calls)
	if len(got) != 1 {
		t.Fatalf("expected one commit, got %d", len(got))
	}
	want := time.Date(2024, time.March, 10, 9, 0, 0, 0, ny)
	if v, _ := got[0].Get(); !v.Equal(want) {
		t.Fatalf("got %v want %v", v, want)
	}
	if text := dt.TimeField().Text(); text != "09:00" {
		t.Fatalf("expected time buffer 09:00, got %q", text)
	}
}

func TestDatetimeSetDisabledCommits(t *testing.T) {
	dt, calls := newRecordedDatetime(DatetimeConfig{Value: value.Of(utc(2024, 1, 1, 9, 0))}, WithID("dt"))
	dt.FocusMember("dt-time")
	dt.TimeField().Input("11:00")
	dt.SetDisabled(true)

	got := commits(*calls)
	if len(got) != 1 {
		t.Fatalf("expected one commit, got %d", len(got))
	}
	if v, _ := got[0].Get(); !v.Equal(utc(2024, 1, 1, 11, 0)) {
		t.Fatalf("unexpected commit %v", got[0])
	}
	if !dt.Disabled() {
		t.Fatalf("expected disabled composite")
	}
	dt.Focus()
	if dt.Focused() {
		t.Fatalf("disabled composite must not take focus")
	}
}

func TestDatetimeSelectRoutesToMembers(t *testing.T) {
	dt, _ := newRecordedDatetime(DatetimeConfig{}, WithID("dt"))
	dt.Focus()
	dt.SelectDate(value.NewDate(2024, time.July, 4))
	dt.SelectTime(value.NewTimeOfDay(14, 30, 0, 0))
	if dt.FocusInput() != FocusTime {
		t.Fatalf("expected time focus, got %s", dt.FocusInput())
	}
	if v, _ := dt.Current().Get(); !v.Equal(utc(2024, 7, 4, 14, 30)) {
		t.Fatalf("unexpected current value %v", dt.Current())
	}
}

func TestDisabledRangeReportsNoSide(t *testing.T) {
	dr := NewDateRange(DateRangeConfig{}, WithID("off"), WithDisabled(true))
	dr.Focus()
	if dr.Side() != FocusNone || dr.Focused() {
		t.Fatalf("disabled range must not take focus, got %s", dr.Side())
	}
	dr.FocusMember("off-end")
	if dr.Side() != FocusNone {
		t.Fatalf("disabled end must not become the active side, got %s", dr.Side())
	}

	dr.SetDisabled(false)
	dr.FocusMember("off-end")
	if dr.Side() != FocusEnd || !dr.EndField().Focused() {
		t.Fatalf("expected end focus once enabled, got %s", dr.Side())
	}
}

func TestDateRangeSwapsOnCommit(t *testing.T) {
	var calls []call[value.Range[value.Date]]
	may10 := value.NewDate(2024, time.May, 10)
	may1 := value.NewDate(2024, time.May, 1)
	dr := NewDateRange(DateRangeConfig{
		Value: value.Range[value.Date]{Start: value.Of(may10), End: value.Of(may1)},
		OnChange: func(r value.Range[value.Date], wasBlur bool) {
			calls = append(calls, call[value.Range[value.Date]]{v: r, wasBlur: wasBlur})
		},
	}, WithID("stay"))

	dr.Focus()
	dr.Blur()

	got := commits(calls)
	if len(got) != 1 {
		t.Fatalf("expected one commit, got %d", len(got))
	}
	want := value.Range[value.Date]{Start: value.Of(may1), End: value.Of(may10)}
	if !value.EqualRange(got[0], want, func(a, b value.Date) bool { return a == b }) {
		t.Fatalf("expected swapped range, got %v / %v", got[0].Start, got[0].End)
	}
	if dr.StartField().Text() != "2024-05-01" || dr.EndField().Text() != "2024-05-10" {
		t.Fatalf("members should be reseeded in order, got %q %q", dr.StartField().Text(), dr.EndField().Text())
	}
}

func TestDateRangeCalendarFillsStartThenEnd(t *testing.T) {
	var calls []call[value.Range[value.Date]]
	dr := NewDateRange(DateRangeConfig{
		DefaultDays: 2,
		OnChange: func(r value.Range[value.Date], wasBlur bool) {
			calls = append(calls, call[value.Range[value.Date]]{v: r, wasBlur: wasBlur})
		},
	}, WithID("trip"))

	dr.SelectDate(value.NewDate(2024, time.May, 10))
	if dr.Side() != FocusEnd || !dr.EndField().Focused() {
		t.Fatalf("first click should move focus to the end, got %s", dr.Side())
	}
	preview := dr.Value()
	if end, _ := preview.End.Get(); end != value.NewDate(2024, time.May, 12) {
		t.Fatalf("end should be derived while empty, got %v", preview.End)
	}

	dr.SelectDate(value.NewDate(2024, time.May, 3))
	if len(commits(calls)) != 0 {
		t.Fatalf("picker clicks are previews only")
	}
	dr.BlurMember("trip-end", "")

	got := commits(calls)
	if len(got) != 1 {
		t.Fatalf("expected one commit, got %d", len(got))
	}
	start, _ := got[0].Start.Get()
	end, _ := got[0].End.Get()
	if start != value.NewDate(2024, time.May, 3) || end != value.NewDate(2024, time.May, 10) {
		t.Fatalf("unexpected committed range %s..%s", start, end)
	}
}

func TestDateRangeDerivesStartFromEnd(t *testing.T) {
	dr := NewDateRange(DateRangeConfig{DefaultDays: 7}, WithID("r"))
	dr.FocusMember("r-end")
	dr.EndField().Input("2024-05-10")
	dr.Blur()
	start, _ := dr.Committed().Start.Get()
	if start != value.NewDate(2024, time.May, 3) {
		t.Fatalf("expected derived start, got %v", dr.Committed().Start)
	}
}

func TestDatetimeRangeDerivesEndFromDuration(t *testing.T) {
	var calls []call[value.Range[time.Time]]
	dr := NewDatetimeRange(DatetimeRangeConfig{
		Value:           value.Range[time.Time]{Start: value.Of(utc(2024, 1, 1, 9, 0)), End: value.Empty[time.Time]()},
		DefaultDuration: time.Duration(3_600_000) * time.Millisecond,
		Location:        time.UTC,
		OnChange: func(r value.Range[time.Time], wasBlur bool) {
			calls = append(calls, call[value.Range[time.Time]]{v: r, wasBlur: wasBlur})
		},
	}, WithID("meeting"))

	dr.Focus()
	dr.Blur()

	got := commits(calls)
	if len(got) != 1 {
		t.Fatalf("expected one commit, got %d", len(got))
	}
	if end, _ := got[0].End.Get(); !end.Equal(utc(2024, 1, 1, 10, 0)) {
		t.Fatalf("expected derived end 10:00, got %v", got[0].End)
	}
	if text := dr.EndSide().TimeField().Text(); text != "10:00" {
		t.Fatalf("derived end should be reseeded, got %q", text)
	}
}

func TestDatetimeRangeNavigation(t *testing.T) {
	var calls []call[value.Range[time.Time]]
	dr := NewDatetimeRange(DatetimeRangeConfig{
		Location: time.UTC,
		OnChange: func(r value.Range[time.Time], wasBlur bool) {
			calls = append(calls, call[value.Range[time.Time]]{v: r, wasBlur: wasBlur})
		},
	}, WithID("r"))

	wantIDs := []string{"r-end-date", "r-end-time", "r-start-date", "r-start-time"}
	if diff := cmp.Diff(wantIDs, dr.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	dr.Focus()
	if dr.FocusInput() != FocusStartDate {
		t.Fatalf("expected start date focus, got %s", dr.FocusInput())
	}
	dr.SelectDate(value.NewDate(2024, time.June, 1))
	dr.BlurMember("r-start-date", "r-start-time")
	if dr.FocusInput() != FocusStartTime {
		t.Fatalf("expected start time focus, got %s", dr.FocusInput())
	}
	dr.SelectTime(value.NewTimeOfDay(8, 0, 0, 0))
	dr.BlurMember("r-start-time", "r-end-date")
	if dr.FocusInput() != FocusEndDate {
		t.Fatalf("expected end date focus, got %s", dr.FocusInput())
	}
	if n := len(commits(calls)); n != 0 {
		t.Fatalf("internal navigation must not commit, got %d commits", n)
	}

	dr.SelectDate(value.NewDate(2024, time.May, 30))
	dr.BlurMember("r-end-date", "outside")

	got := commits(calls)
	if len(got) != 1 {
		t.Fatalf("expected one commit, got %d", len(got))
	}
	start, _ := got[0].Start.Get()
	end, _ := got[0].End.Get()
	if !start.Equal(utc(2024, 5, 30, 0, 0)) || !end.Equal(utc(2024, 6, 1, 8, 0)) {
		t.Fatalf("expected ordered range, got %s..%s", start, end)
	}
}
