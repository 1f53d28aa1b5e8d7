package model

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// Builder converts OpenAPI schemas into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build turns the named schema into a FormModel. Object properties become
// fields ordered by their "order" hint, then by name.
func (b *Builder) Build(name string, schema pkgopenapi.Schema) (FormModel, error) {
	if strings.TrimSpace(name) == "" {
		return FormModel{}, errSchemaNameMissing
	}
	if err := validateSchema("", schema); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		ID:          name,
		Title:       schema.Title,
		Description: schema.Description,
		Metadata:    metadataFromExtensions(schema.Extensions),
	}
	if form.Title == "" {
		form.Title = b.opts.Labeler(name)
	}
	if schema.Type != "" && schema.Type != "object" {
		form.Fields = []Field{b.field("", name, schema, true)}
		return form, nil
	}
	form.Fields = b.properties("", schema)
	return form, nil
}

func (b *Builder) properties(prefix string, schema pkgopenapi.Schema) []Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	fields := make([]Field, 0, len(schema.Properties))
	for name, prop := range schema.Properties {
		fields = append(fields, b.field(prefix, name, prop, required[name]))
	}
	slices.SortStableFunc(fields, func(a, c Field) int {
		if d := cmp.Compare(fieldOrder(a), fieldOrder(c)); d != 0 {
			return d
		}
		return cmp.Compare(a.Name, c.Name)
	})
	return fields
}

func (b *Builder) field(prefix, name string, schema pkgopenapi.Schema, required bool) Field {
	field := Field{
		Name:        name,
		Path:        joinPath(prefix, name),
		Type:        mapType(schema),
		Format:      strings.ToLower(strings.TrimSpace(schema.Format)),
		Required:    required,
		ReadOnly:    schema.ReadOnly,
		Label:       schema.Title,
		Description: schema.Description,
		Default:     schema.Default,
		Endpoint:    endpointFromExtensions(schema.Extensions),
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}
	if schema.Ref != "" {
		field.ensureMetadata()["$ref"] = schema.Ref
	}

	metadata := metadataFromExtensions(schema.Extensions)
	field.Metadata = mergeInto(field.Metadata, metadata)
	field.UIHints = filterUIHints(metadata)
	if label := field.UIHints["label"]; label != "" {
		field.Label = label
	}
	field.Placeholder = field.UIHints["placeholder"]

	field.Options = choices(schema.Enum, optionLabels(schema.Extensions))
	applyValidations(&field, schema)

	switch field.Type {
	case FieldTypeObject:
		field.Nested = b.properties(field.Path, schema)
	case FieldTypeArray:
		item := b.field(field.Path, "item", *schema.Items, false)
		field.Items = &item
	}
	field.normalize()
	return field
}

func mapType(schema pkgopenapi.Schema) FieldType {
	switch schema.Type {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	case "":
		if len(schema.Properties) > 0 {
			return FieldTypeObject
		}
	}
	return FieldTypeString
}

func choices(enum []any, labels map[string]string) []Choice {
	if len(enum) == 0 {
		return nil
	}
	out := make([]Choice, 0, len(enum))
	for _, raw := range enum {
		if raw == nil {
			continue
		}
		v, ok := CanonicalizeExtensionValue(raw)
		if !ok {
			v = fmt.Sprint(raw)
		}
		out = append(out, Choice{Value: v, Label: labels[v]})
	}
	return out
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	bound := func(kind string, v *float64, exclusive bool) {
		if v == nil {
			return
		}
		params := map[string]string{"value": formatFloat(*v)}
		if exclusive {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{Kind: kind, Params: params})
	}
	bound(ValidationRuleMin, schema.Minimum, schema.ExclusiveMinimum)
	bound(ValidationRuleMax, schema.Maximum, schema.ExclusiveMaximum)

	step := schema.MultipleOf
	if hint := field.UIHints["step"]; hint != "" && step == nil {
		if n, err := strconv.ParseFloat(hint, 64); err == nil && n > 0 {
			step = &n
		}
	}
	bound(ValidationRuleStep, step, false)

	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
}

func fieldOrder(f Field) int {
	if n, err := strconv.Atoi(f.UIHints["order"]); err == nil {
		return n
	}
	return 0
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
