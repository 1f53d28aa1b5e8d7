package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

func TestPrepare_ResolvesWidgets(t *testing.T) {
	form, factory, err := prepare(context.Background(), "testdata/booking.yaml", "Booking", config.Default())
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	got := map[string]string{}
	model.Walk(form.Fields, func(f model.Field) bool {
		got[f.Path] = f.Hint("widget")
		return true
	})
	want := map[string]string{
		"arrival": widgets.WidgetDate,
		"guest":   widgets.WidgetText,
		"room":    widgets.WidgetSelect,
		"zone":    widgets.WidgetAsyncSelect,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}

	controls, err := factory.BuildForm(form, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer widgets.CloseAll(controls)

	var zone widgets.Searcher
	for _, c := range controls {
		if s, ok := c.(widgets.Searcher); ok && c.Field().Path == "zone" {
			zone = s
		}
	}
	if zone == nil {
		t.Fatalf("zone should be a searchable control")
	}
	zone.Search("paris")
	select {
	case res := <-zone.Results():
		if !zone.Apply(res) {
			t.Fatalf("result for %q was not applied", res.Term)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("zone search did not complete")
	}
	if err := zone.Choose("Europe/Paris"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got := zone.Display(); got != "Europe/Paris" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestPrepare_UnknownSchema(t *testing.T) {
	_, _, err := prepare(context.Background(), "testdata/booking.yaml", "Invoice", config.Default())
	if err == nil || !strings.Contains(err.Error(), "Invoice") {
		t.Fatalf("expected a missing schema error, got %v", err)
	}
}

func TestDecodeValues(t *testing.T) {
	values, err := decodeValues(strings.NewReader(`{"guest":"Ada","stay":{"nights":2}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"guest": "Ada", "stay": map[string]any{"nights": float64(2)}}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if _, err := decodeValues(strings.NewReader(`[1]`)); err == nil {
		t.Fatalf("expected an error for a non-object document")
	}
}
