package widgets

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/asyncselect"
	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/value"
)

type manualTimer struct {
	mu      *sync.Mutex
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) asyncselect.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{mu: &c.mu, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) fire() {
	c.mu.Lock()
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func utcConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("defaults:\n  location: UTC\n"), "test.yaml")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func newTestFactory(t *testing.T, opts ...Option) *Factory {
	t.Helper()
	base := []Option{
		WithConfig(utcConfig(t)),
		WithLogger(debug.Nop()),
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }),
	}
	return NewFactory(append(base, opts...)...)
}

func validation(kind, v string) model.ValidationRule {
	return model.ValidationRule{Kind: kind, Params: map[string]string{"value": v}}
}

func bookingForm() model.FormModel {
	return model.FormModel{Fields: []model.Field{
		{Name: "name", Path: "name", Type: model.FieldTypeString, Label: "Name"},
		{Name: "stay", Path: "stay", Type: model.FieldTypeObject, Nested: []model.Field{
			{
				Name: "nights", Path: "stay.nights", Type: model.FieldTypeInteger, Label: "Nights",
				Validations: []model.ValidationRule{validation(model.ValidationRuleMin, "1"), validation(model.ValidationRuleMax, "30")},
			},
			{Name: "dates", Path: "stay.dates", Type: model.FieldTypeObject, Label: "Dates", Nested: []model.Field{
				{Name: "start", Path: "stay.dates.start", Type: model.FieldTypeString, Format: "date", Label: "Arrival"},
				{Name: "end", Path: "stay.dates.end", Type: model.FieldTypeString, Format: "date"},
			}},
		}},
		{Name: "notes", Path: "notes", Type: model.FieldTypeArray, Items: &model.Field{Type: model.FieldTypeObject}},
	}}
}

func TestBuildFormRoundTripsValues(t *testing.T) {
	f := newTestFactory(t)
	initial := map[string]any{
		"name": "Ada",
		"stay": map[string]any{
			"nights": float64(2),
			"dates":  map[string]any{"start": "2024-03-01", "end": "2024-03-05"},
		},
	}

	controls, err := f.BuildForm(bookingForm(), initial)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	var widgets []string
	for _, c := range controls {
		widgets = append(widgets, c.Widget())
	}
	if diff := cmp.Diff([]string{WidgetText, WidgetNumber, WidgetDateRange}, widgets); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"name": "Ada",
		"stay": map[string]any{
			"nights": int64(2),
			"dates":  map[string]any{"start": "2024-03-01", "end": "2024-03-05"},
		},
	}
	if diff := cmp.Diff(want, Values(controls)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	parts := controls[2].Parts()
	if len(parts) != 2 || parts[0].Label() != "Arrival" || parts[1].Label() != "Dates (end)" {
		t.Fatalf("unexpected range parts: %+v", parts)
	}
	if got := controls[2].Display(); got != "2024-03-01 to 2024-03-05" {
		t.Fatalf("display = %q", got)
	}
}

func TestBuildRejectsInvalidInitial(t *testing.T) {
	f := newTestFactory(t)
	_, err := f.Build(model.Field{Path: "day", Type: model.FieldTypeString, Format: "date"}, "someday")
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestBuildUsesSchemaDefault(t *testing.T) {
	f := newTestFactory(t)
	c, err := f.Build(model.Field{Path: "late", Type: model.FieldTypeBoolean, Default: true}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	v, state := c.Committed()
	if state != value.StateConcrete || v != true {
		t.Fatalf("expected default true, got %v (%s)", v, state)
	}
	if c.Display() != "yes" {
		t.Fatalf("display = %q", c.Display())
	}
}

func TestNumberControlRejectsOffStep(t *testing.T) {
	f := newTestFactory(t)
	c, err := f.Build(model.Field{
		Path: "guests", Type: model.FieldTypeInteger,
		Validations: []model.ValidationRule{validation(model.ValidationRuleMin, "1")},
	}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	part := c.Parts()[0]

	c.Focus(part.ID())
	part.Input("3")
	c.Leave(part.ID(), "")
	if v, state := c.Committed(); state != value.StateConcrete || v != int64(3) {
		t.Fatalf("expected 3, got %v (%s)", v, state)
	}

	c.Focus(part.ID())
	part.Input("2.5")
	if part.Valid() {
		t.Fatalf("expected off-step input to be invalid")
	}
	c.Blur()
	if _, state := c.Committed(); state != value.StateEmpty {
		t.Fatalf("expected auto-erase to empty, got %s", state)
	}
}

func TestDatetimeControlCommitsAcrossParts(t *testing.T) {
	var commits int
	f := newTestFactory(t, WithOnChange(func(_ Control, wasBlur bool) {
		if wasBlur {
			commits++
		}
	}))
	c, err := f.Build(model.Field{Path: "pickup", Type: model.FieldTypeString, Format: "date-time", Label: "Pickup"}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	parts := c.Parts()
	if parts[0].Label() != "Pickup (date)" || parts[1].Label() != "Pickup (time)" {
		t.Fatalf("unexpected labels %q, %q", parts[0].Label(), parts[1].Label())
	}

	c.Focus(parts[0].ID())
	parts[0].Input("2024-03-05")
	c.Leave(parts[0].ID(), parts[1].ID())
	if commits != 0 {
		t.Fatalf("moving between parts must not commit")
	}
	parts[1].Input("14:30")
	c.Leave(parts[1].ID(), "")

	if commits != 1 {
		t.Fatalf("expected one commit, got %d", commits)
	}
	v, state := c.Committed()
	if state != value.StateConcrete || v != "2024-03-05T14:30:00Z" {
		t.Fatalf("unexpected commit %v (%s)", v, state)
	}
}

func TestDateRangeHintFillsEnd(t *testing.T) {
	f := newTestFactory(t)
	c, err := f.Build(model.Field{
		Path: "trip", Type: model.FieldTypeObject,
		UIHints: map[string]string{"defaultDays": "2"},
		Nested: []model.Field{
			{Name: "start", Path: "trip.start", Type: model.FieldTypeString, Format: "date"},
			{Name: "end", Path: "trip.end", Type: model.FieldTypeString, Format: "date"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	start := c.Parts()[0]
	c.Focus(start.ID())
	start.Input("2024-03-05")
	c.Leave(start.ID(), "")

	v, _ := c.Committed()
	want := map[string]any{"start": "2024-03-05", "end": "2024-03-07"}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("range mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectChoose(t *testing.T) {
	f := newTestFactory(t)
	c, err := f.Build(model.Field{
		Path: "room", Type: model.FieldTypeString,
		Options: []model.Choice{{Value: "single", Label: "Single"}, {Value: "suite", Label: "Suite", Disabled: true}},
	}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	chooser, ok := c.(Chooser)
	if !ok {
		t.Fatalf("select should implement Chooser")
	}
	if err := chooser.Choose("suite"); !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("expected disabled option to be refused, got %v", err)
	}
	if err := chooser.Choose("single"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if v, _ := c.Committed(); v != "single" {
		t.Fatalf("expected single, got %v", v)
	}
	if c.Display() != "Single" {
		t.Fatalf("display = %q", c.Display())
	}
}

func TestMultiSelectChoose(t *testing.T) {
	f := newTestFactory(t)
	c, err := f.Build(model.Field{
		Path: "extras", Type: model.FieldTypeArray,
		Items: &model.Field{Type: model.FieldTypeString, Options: []model.Choice{
			{Value: "wifi", Label: "Wi-Fi"}, {Value: "parking", Label: "Parking"},
		}},
	}, []any{"parking"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	chooser := c.(Chooser)
	if err := chooser.Choose("wifi", "breakfast"); !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("expected unknown choice error, got %v", err)
	}
	if err := chooser.Choose("wifi", "parking"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	v, _ := c.Committed()
	if diff := cmp.Diff([]string{"wifi", "parking"}, v); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if c.Display() != "Wi-Fi, Parking" {
		t.Fatalf("display = %q", c.Display())
	}
}

func TestAsyncSelectSearchApplyChoose(t *testing.T) {
	clock := &manualClock{}
	source := asyncselect.StaticSource{
		{Value: "apple", Label: "Apple"},
		{Value: "apricot", Label: "Apricot"},
		{Value: "pear", Label: "Pear"},
	}
	f := newTestFactory(t, WithAsyncClock(clock), WithSource("fruit", source))
	c, err := f.Build(model.Field{
		Path: "fruit", Type: model.FieldTypeString,
		Endpoint: &model.Endpoint{URL: "https://example.test/fruit"},
	}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer CloseAll([]Control{c})

	searcher, ok := c.(Searcher)
	if !ok {
		t.Fatalf("async select should implement Searcher")
	}
	searcher.Search("ap")
	if !searcher.Loading() {
		t.Fatalf("expected a pending search")
	}
	clock.fire()

	res := <-searcher.Results()
	if !searcher.Apply(res) {
		t.Fatalf("expected result for %q to apply", res.Term)
	}
	var got []string
	for _, opt := range searcher.Choices() {
		got = append(got, opt.Value)
	}
	if diff := cmp.Diff([]string{"apple", "apricot"}, got); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if err := searcher.Choose("apricot"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if v, _ := c.Committed(); v != "apricot" {
		t.Fatalf("expected apricot, got %v", v)
	}
}

func TestAsyncSelectWithoutSourceFails(t *testing.T) {
	reg := NewRegistry()
	reg.Register(WidgetAsyncSelect, 200, func(fld model.Field) bool { return strings.HasPrefix(fld.Path, "remote") })
	f := newTestFactory(t, WithRegistry(reg))
	if _, err := f.Build(model.Field{Path: "remote", Type: model.FieldTypeString}, nil); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
}

func TestReadOnlyRangeIsDisabled(t *testing.T) {
	f := newTestFactory(t)
	c, err := f.Build(model.Field{
		Path: "lease", Type: model.FieldTypeObject, ReadOnly: true,
		Nested: []model.Field{
			{Name: "start", Path: "lease.start", Type: model.FieldTypeString, Format: "date"},
			{Name: "end", Path: "lease.end", Type: model.FieldTypeString, Format: "date"},
		},
	}, map[string]any{"start": "2024-03-01", "end": "2024-03-31"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !c.Disabled() {
		t.Fatalf("read-only range should report disabled")
	}
	start := c.Parts()[0]
	c.Focus(start.ID())
	if c.Focused() {
		t.Fatalf("disabled range must not take focus")
	}
	start.Input("2024-04-01")
	v, _ := c.Committed()
	want := map[string]any{"start": "2024-03-01", "end": "2024-03-31"}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("range mismatch (-want +got):\n%s", diff)
	}
}
