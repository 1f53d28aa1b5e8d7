package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	formfield "github.com/goliatone/go-formfield"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

func TestLintFile_ReportsInvalidHints(t *testing.T) {
	parser := formfield.NewParser(pkgopenapi.WithValidation(false))
	found, err := lintFile(context.Background(), parser, "testdata/hints.yaml")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	var buf bytes.Buffer
	if n := report(&buf, found); n != 4 {
		t.Fatalf("expected 4 violations, got %d:\n%s", n, buf.String())
	}
	var locations []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		_, rest, _ := strings.Cut(line, ": ")
		location, _, _ := strings.Cut(rest, " -> ")
		locations = append(locations, location)
	}
	want := []string{
		"Event > properties.duration > colour",
		"Event > properties.duration > widget",
		"Event > properties.slot",
		"Event > properties.slot",
	}
	if diff := cmp.Diff(want, locations); diff != "" {
		t.Fatalf("locations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateHint(t *testing.T) {
	tests := []struct {
		key  string
		raw  any
		want string
	}{
		{key: "widget", raw: "date-range"},
		{key: "autoErase", raw: false},
		{key: "interval", raw: 15},
		{key: "defaultTime", raw: "09:30"},
		{key: "defaultTime", raw: "breakfast", want: "defaultTime must be a time of day"},
		{key: "step", raw: "a lot", want: "step must be a number"},
		{key: "widget", raw: map[string]any{}, want: "must be a string, number, or boolean"},
		{key: "", raw: "x", want: "extension key is empty"},
	}
	for _, tt := range tests {
		got := validateHint(tt.key, tt.raw)
		if tt.want == "" && got != "" {
			t.Fatalf("validateHint(%q, %v) = %q, want no violation", tt.key, tt.raw, got)
		}
		if !strings.Contains(got, tt.want) {
			t.Fatalf("validateHint(%q, %v) = %q, want %q", tt.key, tt.raw, got, tt.want)
		}
	}
}
