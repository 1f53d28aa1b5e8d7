package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/asyncselect"
	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	prompts      []InputConfig
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.prompts = append(s.prompts, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func testFactory(t *testing.T, opts ...widgets.Option) *widgets.Factory {
	t.Helper()
	cfg, err := config.Parse([]byte("defaults:\n  location: UTC\n  debounce: 1ms\n"), "test.yaml")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	base := []widgets.Option{widgets.WithConfig(cfg), widgets.WithLogger(debug.Nop())}
	return widgets.NewFactory(append(base, opts...)...)
}

func newRenderer(t *testing.T, driver PromptDriver, opts ...widgets.Option) *Renderer {
	t.Helper()
	return New(WithPromptDriver(driver), WithFactory(testFactory(t, opts...)))
}

func decodeJSON(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	return got
}

func TestRender_TextSelectAndNumber(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Ada", "0", "2"},
		selectIdx: []int{1},
	}
	form := model.FormModel{Fields: []model.Field{
		{Name: "name", Path: "name", Type: model.FieldTypeString, Label: "Name", Required: true},
		{
			Name: "room", Path: "room", Type: model.FieldTypeString, Label: "Room",
			Options: []model.Choice{{Value: "single", Label: "Single"}, {Value: "double", Label: "Double"}},
		},
		{
			Name: "guests", Path: "guests", Type: model.FieldTypeInteger, Label: "Guests",
			Validations: []model.ValidationRule{{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "1"}}},
		},
	}}

	out, err := newRenderer(t, driver).Render(context.Background(), form, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := map[string]any{"name": "Ada", "room": "double", "guests": float64(2)}
	if diff := cmp.Diff(want, decodeJSON(t, out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected a required and an invalid message, got %v", driver.infoMessages)
	}
	if !strings.Contains(driver.infoMessages[0], "Name is required") {
		t.Fatalf("unexpected message %q", driver.infoMessages[0])
	}
}

func TestRender_DatetimeRangeFillsEnd(t *testing.T) {
	driver := &stubDriver{inputs: []string{"2024-03-05", "10:00", "", ""}}
	form := model.FormModel{Fields: []model.Field{
		{Name: "slot", Path: "slot", Type: model.FieldTypeObject, Label: "Slot", Nested: []model.Field{
			{Name: "start", Path: "slot.start", Type: model.FieldTypeString, Format: "date-time"},
			{Name: "end", Path: "slot.end", Type: model.FieldTypeString, Format: "date-time"},
		}},
	}}

	out, err := newRenderer(t, driver).Render(context.Background(), form, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := map[string]any{"slot": map[string]any{
		"start": "2024-03-05T10:00:00Z",
		"end":   "2024-03-05T11:00:00Z",
	}}
	if diff := cmp.Diff(want, decodeJSON(t, out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if got := driver.prompts[1].Message; got != "Slot (start) (time)" {
		t.Fatalf("unexpected prompt %q", got)
	}
	if driver.prompts[1].Suggest == nil {
		t.Fatalf("time parts should offer suggestions")
	}
}

func TestRender_AsyncSearch(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"pe"},
		selectIdx: []int{0},
	}
	source := asyncselect.StaticSource{
		{Value: "apple", Label: "Apple"},
		{Value: "pear", Label: "Pear"},
	}
	form := model.FormModel{Fields: []model.Field{{
		Name: "fruit", Path: "fruit", Type: model.FieldTypeString, Label: "Fruit",
		Endpoint: &model.Endpoint{URL: "https://example.test/fruit"},
	}}}

	r := newRenderer(t, driver, widgets.WithSource("fruit", source))
	values, err := r.Collect(context.Background(), form, RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"fruit": "pear"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ToggleMultiAndPretty(t *testing.T) {
	driver := &stubDriver{
		confirm:  []bool{true},
		multiIdx: [][]int{{1, 0}},
	}
	form := model.FormModel{Fields: []model.Field{
		{Name: "late", Path: "late", Type: model.FieldTypeBoolean, Label: "Late checkout"},
		{
			Name: "extras", Path: "extras", Type: model.FieldTypeArray, Label: "Extras",
			Items: &model.Field{Type: model.FieldTypeString, Options: []model.Choice{
				{Value: "wifi"}, {Value: "parking"},
			}},
		},
	}}

	r := New(
		WithPromptDriver(driver),
		WithFactory(testFactory(t)),
		WithOutputFormat(OutputFormatPrettyText),
	)

	out, err := r.Render(context.Background(), form, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "extras=parking, wifi\nlate=true\n"
	if string(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
	if r.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_ShowsServerErrorsAndKeepsPrefill(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Grace"}}
	form := model.FormModel{Fields: []model.Field{
		{Name: "name", Path: "name", Type: model.FieldTypeString, Label: "Name"},
	}}
	opts := RenderOptions{
		Values: map[string]any{"name": "Ada", "untouched": "kept"},
		Errors: map[string][]string{"name": {"already taken"}},
	}

	values, err := newRenderer(t, driver).Collect(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Grace", "untouched": "kept"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if driver.prompts[0].Default != "Ada" {
		t.Fatalf("expected prefilled default, got %q", driver.prompts[0].Default)
	}
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "already taken" {
		t.Fatalf("unexpected messages %v", driver.infoMessages)
	}
}

func TestRender_Aborted(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}
	form := model.FormModel{Fields: []model.Field{
		{Name: "name", Path: "name", Type: model.FieldTypeString},
	}}
	if _, err := newRenderer(t, driver).Render(context.Background(), form, RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
