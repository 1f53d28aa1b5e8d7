package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Schemas returns component schemas by name and, when enabled, operation
// request bodies keyed by operationId.
func (p *Parser) Schemas(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	out := make(map[string]pkgopenapi.Schema)
	if spec.Components != nil {
		for name, ref := range spec.Components.Schemas {
			out[name] = newConverter().convert(ref)
		}
	}
	if p.options.IncludeOperations && spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil || op.RequestBody == nil {
					continue
				}
				id := op.OperationID
				if id == "" {
					id = strings.ToLower(method) + ":" + path
				}
				schema := requestSchema(op.RequestBody)
				if schema.Type == "" && schema.Ref == "" && len(schema.Properties) == 0 {
					continue
				}
				if schema.Title == "" {
					schema.Title = op.Summary
				}
				out[id] = schema
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("openapi parser: document declares no schemas")
	}
	return out, nil
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if body.Value == nil {
		return pkgopenapi.Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return newConverter().convert(mt.Schema)
		}
	}
	for _, mt := range content {
		if mt != nil {
			return newConverter().convert(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

// converter tracks the schemas on the current path so recursive references
// stop at the ref instead of expanding forever.
type converter struct {
	active map[*openapi3.Schema]bool
}

func newConverter() *converter {
	return &converter{active: make(map[*openapi3.Schema]bool)}
}

func (c *converter) convert(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	schema := pkgopenapi.Schema{
		Ref:              ref.Ref,
		Type:             firstSchemaType(src.Type),
		Format:           src.Format,
		Title:            src.Title,
		Description:      src.Description,
		Default:          src.Default,
		ReadOnly:         src.ReadOnly,
		Minimum:          src.Min,
		Maximum:          src.Max,
		ExclusiveMinimum: src.ExclusiveMin,
		ExclusiveMaximum: src.ExclusiveMax,
		MultipleOf:       src.MultipleOf,
		Pattern:          src.Pattern,
		Extensions:       extractExtensions(src.Extensions),
	}
	if c.active[src] {
		return schema
	}
	c.active[src] = true
	defer delete(c.active, src)

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if src.MinLength != 0 {
		n := int(src.MinLength)
		schema.MinLength = &n
	}
	if src.MaxLength != nil {
		n := int(*src.MaxLength)
		schema.MaxLength = &n
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = c.convert(property)
		}
	}
	if src.Items != nil {
		items := c.convert(src.Items)
		schema.Items = &items
	}
	c.mergeAllOf(&schema, src.AllOf)
	return schema
}

// mergeAllOf folds allOf members into target: properties, required names,
// extensions and any type or format the target lacks.
func (c *converter) mergeAllOf(target *pkgopenapi.Schema, refs openapi3.SchemaRefs) {
	for _, ref := range refs {
		if ref == nil || ref.Value == nil {
			continue
		}
		part := c.convert(ref)
		if target.Type == "" {
			target.Type = part.Type
		}
		if target.Format == "" {
			target.Format = part.Format
		}
		target.Required = append(target.Required, part.Required...)
		if len(part.Properties) > 0 {
			if target.Properties == nil {
				target.Properties = make(map[string]pkgopenapi.Schema, len(part.Properties))
			}
			for name, prop := range part.Properties {
				if _, exists := target.Properties[name]; !exists {
					target.Properties[name] = prop
				}
			}
		}
		for key, value := range part.Extensions {
			if target.Extensions == nil {
				target.Extensions = make(map[string]any, len(part.Extensions))
			}
			if _, exists := target.Extensions[key]; !exists {
				target.Extensions[key] = value
			}
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}
