package model

import (
	"strconv"
	"strings"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleStep      = "step"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule is a single constraint derived from the schema. Numeric
// rules keep their threshold in Params["value"]; pattern rules keep the
// expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Choice is one enumerated value with its display label.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Endpoint describes a remote option source from the x-endpoint extension.
type Endpoint struct {
	URL         string            `json:"url"`
	Method      string            `json:"method,omitempty"`
	TermParam   string            `json:"termParam,omitempty"`
	ResultsPath string            `json:"resultsPath,omitempty"`
	ValueField  string            `json:"valueField,omitempty"`
	LabelField  string            `json:"labelField,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
}

// Field describes one input of a form.
type Field struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	ReadOnly    bool              `json:"readOnly,omitempty"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Options     []Choice          `json:"options,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Endpoint    *Endpoint         `json:"endpoint,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// FormModel is the top-level description renderers and factories consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Hint returns a trimmed UI hint, falling back to metadata.
func (f Field) Hint(key string) string {
	if v := strings.TrimSpace(f.UIHints[key]); v != "" {
		return v
	}
	return strings.TrimSpace(f.Metadata[key])
}

// Rule returns the numeric threshold of a validation rule.
func (f Field) Rule(kind string) (float64, bool) {
	for _, rule := range f.Validations {
		if rule.Kind != kind {
			continue
		}
		n, err := strconv.ParseFloat(rule.Params["value"], 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// NestedField returns the direct child called name.
func (f Field) NestedField(name string) (Field, bool) {
	for _, child := range f.Nested {
		if child.Name == name {
			return child, true
		}
	}
	return Field{}, false
}

// Walk visits fields depth-first, parents before children.
func Walk(fields []Field, fn func(Field) bool) {
	for _, field := range fields {
		if !fn(field) {
			continue
		}
		Walk(field.Nested, fn)
	}
}

func (f *Field) ensureMetadata() map[string]string {
	if f.Metadata == nil {
		f.Metadata = make(map[string]string)
	}
	return f.Metadata
}

func (f *Field) normalize() {
	if len(f.Metadata) == 0 {
		f.Metadata = nil
	}
	if len(f.UIHints) == 0 {
		f.UIHints = nil
	}
	if len(f.Validations) == 0 {
		f.Validations = nil
	}
}
