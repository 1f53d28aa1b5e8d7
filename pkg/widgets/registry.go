package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText          = "text"
	WidgetToggle        = "toggle"
	WidgetNumber        = "number"
	WidgetDate          = "date"
	WidgetTime          = "time"
	WidgetDatetime      = "datetime"
	WidgetDuration      = "duration"
	WidgetMonth         = "month"
	WidgetCalendarMonth = "calendar-month"
	WidgetSelect        = "select"
	WidgetMultiSelect   = "multi-select"
	WidgetAsyncSelect   = "async-select"
	WidgetDateRange     = "date-range"
	WidgetDatetimeRange = "datetime-range"
)

var builtinWidgets = []string{
	WidgetText, WidgetToggle, WidgetNumber, WidgetDate, WidgetTime, WidgetDatetime,
	WidgetDuration, WidgetMonth, WidgetCalendarMonth, WidgetSelect, WidgetMultiSelect,
	WidgetAsyncSelect, WidgetDateRange, WidgetDatetimeRange,
}

// Builtin lists the widgets the factory can construct, sorted.
func Builtin() []string {
	out := append([]string(nil), builtinWidgets...)
	sort.Strings(out)
	return out
}

// IsBuiltin reports whether the factory can construct name.
func IsBuiltin(name string) bool {
	for _, w := range builtinWidgets {
		if w == name {
			return true
		}
	}
	return false
}

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields from explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

var _ model.Decorator = (*Registry)(nil)

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit widget hint wins
// over matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := field.Hint("widget"); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator by recording the resolved widget in
// UIHints["widget"] on every field, nested ones included.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		decorated[idx] = r.decorateField(field)
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	if widget, ok := r.Resolve(field); ok {
		hints := make(map[string]string, len(field.UIHints)+1)
		for k, v := range field.UIHints {
			hints[k] = v
		}
		hints["widget"] = widget
		field.UIHints = hints
	}
	if field.Items != nil {
		item := r.decorateField(*field.Items)
		field.Items = &item
	}
	if len(field.Nested) > 0 && !isRangeObject(field, "") {
		field.Nested = r.decorateFields(field.Nested)
	}
	return field
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetAsyncSelect, 100, func(f model.Field) bool {
		return isScalar(f) && f.Endpoint != nil
	})
	r.Register(WidgetDateRange, 95, func(f model.Field) bool {
		return isRangeObject(f, "date")
	})
	r.Register(WidgetDatetimeRange, 95, func(f model.Field) bool {
		return isRangeObject(f, "date-time")
	})
	r.Register(WidgetMultiSelect, 90, func(f model.Field) bool {
		if f.Type != model.FieldTypeArray || f.Items == nil {
			return false
		}
		return len(f.Items.Options) > 0 || len(f.Options) > 0
	})
	r.Register(WidgetSelect, 85, func(f model.Field) bool {
		return isScalar(f) && len(f.Options) > 0
	})
	formats := []struct {
		widget  string
		formats []string
	}{
		{WidgetDatetime, []string{"date-time", "datetime", "datetime-local"}},
		{WidgetDate, []string{"date"}},
		{WidgetTime, []string{"time", "partial-time"}},
		{WidgetDuration, []string{"duration"}},
		{WidgetMonth, []string{"month", "year-month"}},
		{WidgetCalendarMonth, []string{"calendar-month", "month-of-year"}},
	}
	for _, entry := range formats {
		accepted := entry.formats
		r.Register(entry.widget, 80, func(f model.Field) bool {
			return isScalar(f) && containsFold(accepted, f.Format)
		})
	}
	r.Register(WidgetNumber, 70, func(f model.Field) bool {
		return f.Type == model.FieldTypeInteger || f.Type == model.FieldTypeNumber
	})
	r.Register(WidgetToggle, 60, func(f model.Field) bool {
		return f.Type == model.FieldTypeBoolean
	})
	r.Register(WidgetText, 10, func(f model.Field) bool {
		return f.Type == model.FieldTypeString
	})
}

func isScalar(f model.Field) bool {
	return f.Type != model.FieldTypeArray && f.Type != model.FieldTypeObject
}

// isRangeObject reports whether f is an object with start and end children
// of the given format; a blank format accepts either range kind.
func isRangeObject(f model.Field, format string) bool {
	if f.Type != model.FieldTypeObject {
		return false
	}
	start, okStart := f.NestedField("start")
	end, okEnd := f.NestedField("end")
	if !okStart || !okEnd {
		return false
	}
	if format == "" {
		widget := f.Hint("widget")
		return widget == WidgetDateRange || widget == WidgetDatetimeRange ||
			(start.Format == end.Format && (start.Format == "date" || start.Format == "date-time"))
	}
	return start.Format == format && end.Format == format
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
