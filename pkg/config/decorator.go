package config

import (
	"fmt"
	"sort"
	"strconv"

	pkgmodel "github.com/goliatone/go-formfield/pkg/model"
)

// Decorator applies field overrides to a form model. Overrides for paths the
// form does not contain are reported as errors so typos surface early.
type Decorator struct {
	cfg *Config
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// NewDecorator returns a Decorator over cfg; a nil cfg makes it a no-op.
func NewDecorator(cfg *Config) *Decorator {
	return &Decorator{cfg: cfg}
}

// Decorate implements model.Decorator.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.cfg == nil || form == nil || len(d.cfg.Fields) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(d.cfg.Fields))
	form.Fields = d.fields(form.Fields, seen)

	var missing []string
	for path, fc := range d.cfg.Fields {
		if !seen[path] {
			missing = append(missing, fc.OriginalPath)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("config: %s: form %q has no fields %v", d.cfg.Source, form.ID, missing)
	}
	return nil
}

func (d *Decorator) fields(fields []pkgmodel.Field, seen map[string]bool) []pkgmodel.Field {
	out := make([]pkgmodel.Field, len(fields))
	for i, field := range fields {
		if fc, ok := d.cfg.Fields[field.Path]; ok {
			seen[field.Path] = true
			field = apply(field, fc)
		}
		if len(field.Nested) > 0 {
			field.Nested = d.fields(field.Nested, seen)
		}
		if field.Items != nil {
			item := d.fields([]pkgmodel.Field{*field.Items}, seen)[0]
			field.Items = &item
		}
		out[i] = field
	}
	sort.SliceStable(out, func(i, j int) bool { return order(out[i]) < order(out[j]) })
	return out
}

func apply(field pkgmodel.Field, fc FieldConfig) pkgmodel.Field {
	hints := make(map[string]string, len(field.UIHints)+3)
	for k, v := range field.UIHints {
		hints[k] = v
	}
	if fc.Widget != "" {
		hints["widget"] = fc.Widget
	}
	if fc.Label != "" {
		field.Label = fc.Label
	}
	if fc.Placeholder != "" {
		field.Placeholder = fc.Placeholder
	}
	if fc.Order != nil {
		hints["order"] = strconv.Itoa(*fc.Order)
	}
	if fc.Required != nil {
		field.Required = *fc.Required
	}
	if fc.Step != nil {
		field.Validations = withRule(field.Validations, pkgmodel.ValidationRuleStep, *fc.Step)
	}
	if len(fc.Options) > 0 {
		field.Options = make([]pkgmodel.Choice, len(fc.Options))
		for i, opt := range fc.Options {
			field.Options[i] = pkgmodel.Choice{Value: opt.Value, Label: opt.Label, Disabled: opt.Disabled}
		}
	}
	if fc.Endpoint != nil {
		field.Endpoint = &pkgmodel.Endpoint{
			URL:         fc.Endpoint.URL,
			Method:      fc.Endpoint.Method,
			TermParam:   fc.Endpoint.TermParam,
			ResultsPath: fc.Endpoint.ResultsPath,
			ValueField:  fc.Endpoint.ValueField,
			LabelField:  fc.Endpoint.LabelField,
			Params:      fc.Endpoint.Params,
		}
	}
	field.UIHints = hints
	return field
}

func withRule(rules []pkgmodel.ValidationRule, kind string, v float64) []pkgmodel.ValidationRule {
	rule := pkgmodel.ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatFloat(v, 'f', -1, 64)},
	}
	out := make([]pkgmodel.ValidationRule, 0, len(rules)+1)
	for _, r := range rules {
		if r.Kind != kind {
			out = append(out, r)
		}
	}
	return append(out, rule)
}

// order keeps unordered fields in place relative to each other; only an
// explicit order hint moves a field.
func order(f pkgmodel.Field) int {
	n, _ := strconv.Atoi(f.UIHints["order"])
	return n
}
