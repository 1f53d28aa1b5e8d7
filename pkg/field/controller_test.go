package field

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/goliatone/go-formfield/pkg/picker"
	"github.com/goliatone/go-formfield/pkg/value"
)

type emission[T any] struct {
	v       value.Value[T]
	wasBlur bool
}

type recorder[T any] struct {
	calls []emission[T]
}

func (r *recorder[T]) fn(v value.Value[T], wasBlur bool) {
	r.calls = append(r.calls, emission[T]{v: v, wasBlur: wasBlur})
}

func (r *recorder[T]) last(t *testing.T) emission[T] {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatalf("expected at least one emission")
	}
	return r.calls[len(r.calls)-1]
}

var (
	may1 = value.NewDate(2024, time.May, 1)
	may5 = value.NewDate(2024, time.May, 5)
	jun1 = value.NewDate(2024, time.June, 1)
)

func TestInputEmitsPreviewAndOpensPicker(t *testing.T) {
	rec := &recorder[value.Date]{}
	c := NewDate(DateConfig{OnChange: rec.fn}, WithID("due"))

	c.Focus()
	c.Input("5/1/2024")

	got := rec.last(t)
	if got.wasBlur {
		t.Fatalf("input must emit a preview")
	}
	if d, ok := got.v.Get(); !ok || d != may1 {
		t.Fatalf("expected preview of %s, got %v", may1, got.v)
	}
	if !c.PickerVisible() {
		t.Fatalf("picker should be visible while typing")
	}
	if c.Text() != "5/1/2024" {
		t.Fatalf("buffer must keep typed text, got %q", c.Text())
	}
}

func TestBlurCommitsAndNormalisesBuffer(t *testing.T) {
	rec := &recorder[value.Date]{}
	c := NewDate(DateConfig{OnChange: rec.fn})

	c.Focus()
	c.Input("5/1/2024")
	c.Blur()

	got := rec.last(t)
	if !got.wasBlur {
		t.Fatalf("blur must emit a commit")
	}
	if d, _ := got.v.Get(); d != may1 {
		t.Fatalf("unexpected committed value %v", got.v)
	}
	if c.Text() != "2024-05-01" {
		t.Fatalf("expected normalised text, got %q", c.Text())
	}
	if c.Phase() != PhaseIdle || c.PickerVisible() {
		t.Fatalf("expected idle with hidden picker, got %s", c.Phase())
	}
}

func TestBlurWithGarbage(t *testing.T) {
	t.Run("auto erase clears", func(t *testing.T) {
		rec := &recorder[value.Date]{}
		c := NewDate(DateConfig{Value: value.Of(may1), OnChange: rec.fn})
		c.Focus()
		c.Input("not a date")
		if !rec.last(t).v.IsUnresolved() {
			t.Fatalf("garbage should preview as unresolved")
		}
		c.Blur()
		if got := rec.last(t); !got.wasBlur || !got.v.IsEmpty() {
			t.Fatalf("expected empty commit, got %+v", got)
		}
		if c.Text() != "" {
			t.Fatalf("expected cleared buffer, got %q", c.Text())
		}
	})

	t.Run("auto erase off restores committed", func(t *testing.T) {
		rec := &recorder[value.Date]{}
		c := NewDate(DateConfig{Value: value.Of(may1), OnChange: rec.fn}, WithAutoErase(false))
		c.Focus()
		c.Input("not a date")
		c.Blur()
		got := rec.last(t)
		if d, ok := got.v.Get(); !ok || d != may1 || !got.wasBlur {
			t.Fatalf("expected restored commit, got %+v", got)
		}
		if c.Text() != "2024-05-01" {
			t.Fatalf("expected restored text, got %q", c.Text())
		}
	})

	t.Run("auto erase off keeps no opinion", func(t *testing.T) {
		c := NewDate(DateConfig{}, WithAutoErase(false))
		c.Focus()
		c.Input("??")
		c.Blur()
		if !c.Value().IsUnresolved() {
			t.Fatalf("initial no-opinion value should survive, got %v", c.Value())
		}
	})
}

func TestBlurIsIdempotent(t *testing.T) {
	rec := &recorder[value.Date]{}
	c := NewDate(DateConfig{OnChange: rec.fn})
	c.Focus()
	c.Input("2024-05-01")
	c.Blur()
	c.Blur()

	commits := 0
	for _, call := range rec.calls {
		if call.wasBlur {
			commits++
		}
	}
	if commits != 1 {
		t.Fatalf("expected a single commit, got %d", commits)
	}
}

func TestFlushDoesNotMutate(t *testing.T) {
	c := NewDate(DateConfig{Value: value.Of(may1)})
	c.Focus()
	c.Input("garbage")

	if got := c.Flush(); !got.IsEmpty() {
		t.Fatalf("expected flush to erase, got %v", got)
	}
	if c.Text() != "garbage" || !c.Focused() {
		t.Fatalf("flush must not touch state: text=%q phase=%s", c.Text(), c.Phase())
	}
}

func TestEchoedValueKeepsTypedText(t *testing.T) {
	c := NewDate(DateConfig{})
	c.SetOnChange(func(v value.Value[value.Date], _ bool) {
		c.SetValue(v)
	})

	c.Focus()
	c.Input("5/1/2024")
	if c.Text() != "5/1/2024" {
		t.Fatalf("echo must not reformat the buffer, got %q", c.Text())
	}
	c.Input("5/1/202")
	if c.Text() != "5/1/202" {
		t.Fatalf("unresolved echo must not clear the buffer, got %q", c.Text())
	}
}

func TestSetValueWhileFocused(t *testing.T) {
	c := NewDate(DateConfig{Value: value.Of(may1)})
	c.Focus()
	c.Input("5/5/2024")

	c.SetValue(value.Of(may5))
	if c.Text() != "5/5/2024" {
		t.Fatalf("matching value must keep buffer, got %q", c.Text())
	}

	c.SetValue(value.Of(jun1))
	if c.Text() != "2024-06-01" {
		t.Fatalf("foreign value must reseed buffer, got %q", c.Text())
	}
	c.Input("garbage")
	c.Escape()
	if c.Text() != "2024-06-01" {
		t.Fatalf("escape should revert to the externally committed value, got %q", c.Text())
	}
}

func TestSetValueWhileIdleReseeds(t *testing.T) {
	c := NewDate(DateConfig{Value: value.Of(may1)})
	c.SetValue(value.Empty[value.Date]())
	if c.Text() != "" || !c.Committed().IsEmpty() {
		t.Fatalf("expected reseeded empty state, got %q %v", c.Text(), c.Committed())
	}
}

func TestSetDisabledForcesBlur(t *testing.T) {
	rec := &recorder[value.Date]{}
	c := NewDate(DateConfig{OnChange: rec.fn})
	c.Focus()
	c.Input("2024-05-01")

	c.SetDisabled(true)
	if got := rec.last(t); !got.wasBlur {
		t.Fatalf("disabling must commit first, got %+v", got)
	}
	if c.Phase() != PhaseDisabled || c.PickerVisible() {
		t.Fatalf("expected disabled without picker, got %s", c.Phase())
	}

	before := len(rec.calls)
	c.Focus()
	c.Input("2024-06-01")
	c.KeyStep(1)
	if len(rec.calls) != before || c.Text() != "2024-05-01" {
		t.Fatalf("disabled field must ignore interaction")
	}

	c.SetDisabled(false)
	if c.Phase() != PhaseIdle {
		t.Fatalf("expected idle after enabling, got %s", c.Phase())
	}
}

func TestEscapeRevertsToCommitted(t *testing.T) {
	rec := &recorder[value.Date]{}
	c := NewDate(DateConfig{Value: value.Of(may1), OnChange: rec.fn})
	c.Focus()
	c.Input("2024-06-01")

	if !c.Escape() {
		t.Fatalf("escape should be consumed while focused")
	}
	if c.Text() != "2024-05-01" {
		t.Fatalf("unexpected text after escape: %q", c.Text())
	}
	if d, _ := rec.last(t).v.Get(); d != may1 {
		t.Fatalf("escape should preview the committed value, got %v", rec.last(t).v)
	}
	if c.PickerOpen() {
		t.Fatalf("escape should close the picker")
	}
}

func TestEnterOnCalendarOnlyCloses(t *testing.T) {
	c := NewDate(DateConfig{Value: value.Of(may1)})
	c.Focus()
	if !c.Enter() {
		t.Fatalf("enter should be consumed while the picker is open")
	}
	if c.PickerOpen() || c.Phase() != PhaseEditing {
		t.Fatalf("expected editing with closed picker, got %s", c.Phase())
	}
	if c.Enter() {
		t.Fatalf("enter with a closed picker should pass through")
	}
}

func TestTimeGridHighlightAndEnter(t *testing.T) {
	rec := &recorder[value.TimeOfDay]{}
	c := NewTime(TimeConfig{OnChange: rec.fn, Interval: 30})
	c.Focus()
	c.Input("09")

	want := []value.TimeOfDay{value.NewTimeOfDay(9, 0, 0, 0), value.NewTimeOfDay(9, 30, 0, 0)}
	if diff := cmp.Diff(want, c.Candidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	if c.Highlighted() != -1 {
		t.Fatalf("refilter should clear the highlight")
	}

	steps := []struct {
		delta int
		want  int
	}{{1, 0}, {1, 1}, {1, 0}, {-1, 1}}
	for _, step := range steps {
		if got := c.MoveHighlight(step.delta); got != step.want {
			t.Fatalf("MoveHighlight(%d) = %d, want %d", step.delta, got, step.want)
		}
	}

	if !c.Enter() {
		t.Fatalf("enter should accept the highlighted slot")
	}
	if got, _ := c.Value().Get(); got != value.NewTimeOfDay(9, 30, 0, 0) {
		t.Fatalf("unexpected value after enter: %v", c.Value())
	}
	if c.Text() != "09:30" || c.PickerOpen() || !c.Focused() {
		t.Fatalf("expected focused buffer 09:30 with closed picker, got %q %s", c.Text(), c.Phase())
	}
	if rec.last(t).wasBlur {
		t.Fatalf("picker selection is a preview")
	}
}

func TestKeyStep(t *testing.T) {
	t.Run("duration uses value as base", func(t *testing.T) {
		c := NewDuration(DurationConfig{Value: value.Of(30 * value.Minute)})
		c.Focus()
		c.KeyStep(1)
		if c.Text() != "31m" {
			t.Fatalf("unexpected text %q", c.Text())
		}
		c.KeyStep(-1)
		c.KeyStep(-1)
		if got, _ := c.Value().Get(); got != 29*value.Minute {
			t.Fatalf("unexpected value %v", c.Value())
		}
	})

	t.Run("number falls back to start", func(t *testing.T) {
		c := NewNumber(NumberConfig{Min: value.Float(0), Max: value.Float(2), Step: value.Float(0.5), Start: 1})
		c.Focus()
		c.KeyStep(1)
		if got, _ := c.Value().Get(); got != 1.5 {
			t.Fatalf("expected 1.5, got %v", c.Value())
		}
		c.KeyStep(1)
		c.KeyStep(1)
		if got, _ := c.Value().Get(); got != 2 {
			t.Fatalf("expected clamp at max, got %v", c.Value())
		}
	})

	t.Run("calendar month arrows step", func(t *testing.T) {
		c := NewCalendarMonth(CalendarMonthConfig{Value: value.Of(value.CalendarMonth(time.December))}, WithPickerKind(picker.KindNone))
		c.Focus()
		c.Arrow(1)
		if got, _ := c.Value().Get(); got != value.CalendarMonth(time.January) {
			t.Fatalf("expected wrap to January, got %v", c.Value())
		}
	})
}

func TestBlurAlwaysResolves(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		autoErase := rapid.Bool().Draw(t, "autoErase")
		c := NewDate(DateConfig{Value: value.Of(may1)}, WithAutoErase(autoErase))
		c.Focus()
		for _, text := range rapid.SliceOfN(rapid.String(), 1, 5).Draw(t, "inputs") {
			c.Input(text)
		}
		c.Blur()
		if c.Value().IsUnresolved() {
			t.Fatalf("blur left an unresolved value for %q", c.Text())
		}
		if got := c.Flush(); !value.EqualComparable(got, c.Value()) {
			t.Fatalf("commit is not idempotent: %v then %v", c.Value(), got)
		}
	})
}
