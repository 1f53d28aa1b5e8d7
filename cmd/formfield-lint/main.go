package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	formfield "github.com/goliatone/go-formfield"
	internalmodel "github.com/goliatone/go-formfield/internal/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/value"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

const extensionNamespace = "x-formfield"

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s paths...\n\nLint OpenAPI documents for invalid %s UI hints.\n", filepath.Base(os.Args[0]), extensionNamespace)
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	parser := formfield.NewParser(pkgopenapi.WithValidation(false))
	var violations []violation
	for _, path := range flag.Args() {
		found, err := lintFile(ctx, parser, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, found...)
	}
	if report(os.Stderr, violations) > 0 {
		os.Exit(1)
	}
}

func report(w io.Writer, violations []violation) int {
	slices.SortFunc(violations, func(a, b violation) int {
		return cmp.Or(
			strings.Compare(a.file, b.file),
			strings.Compare(a.location, b.location),
			strings.Compare(a.message, b.message),
		)
	})
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return len(violations)
}

func lintFile(ctx context.Context, parser pkgopenapi.Parser, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	schemas, err := parser.Schemas(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse schemas: %w", err)
	}

	var result []violation
	for _, name := range slices.Sorted(maps.Keys(schemas)) {
		result = append(result, lintSchema(path, []string{name}, schemas[name])...)
	}
	return result, nil
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	result := lintExtensions(file, path, schema.Extensions)
	for _, key := range slices.Sorted(maps.Keys(schema.Properties)) {
		result = append(result, lintSchema(file, appendPath(path, "properties."+key), schema.Properties[key])...)
	}
	if schema.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	var result []violation
	add := func(location []string, msg string) {
		result = append(result, violation{file: file, location: strings.Join(location, " > "), message: msg})
	}
	for _, key := range slices.Sorted(maps.Keys(extensions)) {
		raw := extensions[key]
		switch {
		case key == extensionNamespace:
			nested, ok := raw.(map[string]any)
			if !ok {
				add(path, fmt.Sprintf("%s must be an object, found %T", extensionNamespace, raw))
				continue
			}
			for _, hint := range slices.Sorted(maps.Keys(nested)) {
				if msg := validateHint(hint, nested[hint]); msg != "" {
					add(appendPath(path, hint), msg)
				}
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			if msg := validateHint(strings.TrimPrefix(key, extensionNamespace+"-"), raw); msg != "" {
				add(path, msg)
			}
		}
	}
	return result
}

// validateHint returns a message describing what is wrong with the hint, or
// "" when it is usable.
func validateHint(key string, raw any) string {
	switch key {
	case "":
		return "extension key is empty"
	case "optionLabels":
		return ""
	}
	if !internalmodel.IsAllowedUIHintKey(key) {
		return fmt.Sprintf("unsupported UI hint %q (supported: %s)", key, strings.Join(internalmodel.AllowedUIHintKeys(), ", "))
	}
	text, ok := internalmodel.CanonicalizeExtensionValue(raw)
	if !ok {
		return fmt.Sprintf("value for %q must be a string, number, or boolean (got %T)", key, raw)
	}

	switch key {
	case "widget":
		if !widgets.IsBuiltin(text) {
			return fmt.Sprintf("unknown widget %q (supported: %s)", text, strings.Join(widgets.Builtin(), ", "))
		}
	case "autoErase":
		if _, err := strconv.ParseBool(text); err != nil {
			return fmt.Sprintf("autoErase must be a boolean, got %q", text)
		}
	case "interval", "defaultDays", "order":
		if _, err := strconv.Atoi(text); err != nil {
			return fmt.Sprintf("%s must be an integer, got %q", key, text)
		}
	case "step":
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Sprintf("step must be a number, got %q", text)
		}
	case "defaultDuration":
		if v := (value.DurationCodec{}).Parse(text); !v.IsConcrete() {
			return fmt.Sprintf("defaultDuration must be a duration, got %q", text)
		}
	case "defaultTime":
		if v := (value.TimeCodec{}).Parse(text); !v.IsConcrete() {
			return fmt.Sprintf("defaultTime must be a time of day, got %q", text)
		}
	case "location":
		if _, err := time.LoadLocation(text); err != nil {
			return fmt.Sprintf("unknown location %q", text)
		}
	}
	return ""
}

func appendPath(path []string, segment string) []string {
	return append(slices.Clone(path), segment)
}
