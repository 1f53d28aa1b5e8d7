package timezones

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/value"
)

func TestLoadZones_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
America/New_York
Europe/Paris
America/New_York

UTC
`)
	zones, err := LoadZones(input)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"America/New_York", "Europe/Paris", "UTC"}, zones); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultZones_ContainsCommonEntries(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("default zones: %v", err)
	}
	if len(zones) < 200 {
		t.Fatalf("expected a reasonably sized list, got %d", len(zones))
	}
	for _, want := range []string{"America/New_York", "Europe/Paris", "UTC"} {
		if !slices.Contains(zones, want) {
			t.Fatalf("expected zone %q", want)
		}
	}

	zones[0] = "mutated"
	again, _ := DefaultZones()
	if again[0] == "mutated" {
		t.Fatalf("DefaultZones should return a copy")
	}
}

func TestSearch_Ranking(t *testing.T) {
	zones := []string{"America/Paramaribo", "Europe/Paris", "Pacific/Pago_Pago", "Test/Comparison", "Paraguay/Asuncion"}
	got := Search(zones, "par", 10, NewOptions())
	want := []string{"Paraguay/Asuncion", "America/Paramaribo", "Europe/Paris", "Test/Comparison"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_FoldsCaseAndSpaces(t *testing.T) {
	zones := []string{"America/New_York", "Europe/Paris", "UTC"}
	got := Search(zones, "new y", 10, NewOptions())
	if diff := cmp.Diff([]string{"America/New_York"}, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	if got := Search(zones, "eUrOpE/p", 10, NewOptions()); len(got) != 1 || got[0] != "Europe/Paris" {
		t.Fatalf("unexpected results %v", got)
	}
}

func TestSearch_Limits(t *testing.T) {
	zones := []string{"a", "b", "c", "d"}
	tests := []struct {
		name  string
		limit int
		opts  Options
		want  int
	}{
		{name: "empty term lists nothing", limit: 0, opts: NewOptions(), want: 0},
		{name: "default limit", limit: 0, opts: NewOptions(WithListAll(true), WithDefaultLimit(2)), want: 2},
		{name: "max clamps", limit: 10, opts: NewOptions(WithListAll(true), WithMaxLimit(3)), want: 3},
		{name: "negative", limit: -1, opts: NewOptions(WithListAll(true)), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Search(zones, "", tt.limit, tt.opts); len(got) != tt.want {
				t.Fatalf("expected %d results, got %v", tt.want, got)
			}
		})
	}
}

func TestSearchOptions_Labels(t *testing.T) {
	got := SearchOptions([]string{"America/New_York"}, "york", 0, NewOptions())
	want := []value.Option{{Value: "America/New_York", Label: "America/New York"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSource_Search(t *testing.T) {
	src := NewSource(WithZones([]string{"Europe/Berlin", "Europe/Paris"}))
	got, err := src.Search(context.Background(), "paris")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Value != "Europe/Paris" {
		t.Fatalf("unexpected options %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Search(ctx, "paris"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
