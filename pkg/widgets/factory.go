package widgets

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formfield/pkg/asyncselect"
	"github.com/goliatone/go-formfield/pkg/composite"
	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/multiselect"
	"github.com/goliatone/go-formfield/pkg/value"
)

// Factory builds controls for model fields.
type Factory struct {
	registry   *Registry
	config     *config.Config
	now        value.Clock
	client     *http.Client
	sources    map[string]asyncselect.OptionSource
	logger     debug.Logger
	ctx        context.Context
	asyncClock asyncselect.Clock
	onChange   ChangeFunc
}

// Option configures a Factory.
type Option func(*Factory)

// WithRegistry replaces the widget registry.
func WithRegistry(reg *Registry) Option {
	return func(f *Factory) {
		if reg != nil {
			f.registry = reg
		}
	}
}

// WithConfig supplies layouts, defaults and per-field settings.
func WithConfig(cfg *config.Config) Option {
	return func(f *Factory) { f.config = cfg }
}

// WithClock sets the clock used for "today" fallbacks.
func WithClock(now value.Clock) Option {
	return func(f *Factory) { f.now = now }
}

// WithHTTPClient sets the client used by endpoint-backed selects.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Factory) {
		if client != nil {
			f.client = client
		}
	}
}

// WithSource registers the option source of the async select at path. It
// takes precedence over the field's endpoint.
func WithSource(path string, src asyncselect.OptionSource) Option {
	return func(f *Factory) {
		if src == nil {
			return
		}
		if f.sources == nil {
			f.sources = map[string]asyncselect.OptionSource{}
		}
		f.sources[config.NormalizeFieldPath(path)] = src
	}
}

// WithLogger routes controller diagnostics.
func WithLogger(logger debug.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithContext bounds async searches.
func WithContext(ctx context.Context) Option {
	return func(f *Factory) {
		if ctx != nil {
			f.ctx = ctx
		}
	}
}

// WithAsyncClock replaces the debounce timer source of async selects.
func WithAsyncClock(clock asyncselect.Clock) Option {
	return func(f *Factory) { f.asyncClock = clock }
}

// WithOnChange observes every control preview and commit.
func WithOnChange(fn ChangeFunc) Option {
	return func(f *Factory) { f.onChange = fn }
}

// NewFactory builds a factory with the builtin registry and configuration.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		registry: NewRegistry(),
		config:   config.Default(),
		client:   http.DefaultClient,
		logger:   debug.Default(),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// BuildForm builds one control per leaf field of the form. Plain objects are
// flattened; range objects become a single control. Initial values are read
// from values by field path, falling back to the schema default.
func (f *Factory) BuildForm(form model.FormModel, values map[string]any) ([]Control, error) {
	var controls []Control
	if err := f.collect(form.Fields, values, &controls); err != nil {
		CloseAll(controls)
		return nil, err
	}
	return controls, nil
}

func (f *Factory) collect(fields []model.Field, values map[string]any, out *[]Control) error {
	for _, fld := range fields {
		widget, ok := f.registry.Resolve(fld)
		if !ok && fld.Type == model.FieldTypeObject {
			if err := f.collect(fld.Nested, values, out); err != nil {
				return err
			}
			continue
		}
		if !ok {
			f.logger.Logf("widgets: skipping %s: no widget for %s field", fld.Path, fld.Type)
			continue
		}
		initial, _ := Lookup(values, fld.Path)
		control, err := f.build(fld, widget, initial)
		if err != nil {
			return err
		}
		*out = append(*out, control)
	}
	return nil
}

// Build builds the control of a single field. A nil initial falls back to
// the field default.
func (f *Factory) Build(fld model.Field, initial any) (Control, error) {
	widget, ok := f.registry.Resolve(fld)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no widget", ErrUnknownWidget, fld.Path)
	}
	return f.build(fld, widget, initial)
}

func (f *Factory) build(fld model.Field, widget string, initial any) (Control, error) {
	if initial == nil {
		initial = fld.Default
	}
	s := f.settings(fld)
	b := base{field: fld, widget: widget, onChange: f.onChange}
	opts := []field.Option{
		field.WithID(fld.Path),
		field.WithAutoErase(s.AutoErase),
		field.WithLogger(f.logger),
		field.WithDisabled(s.Disabled),
	}

	switch widget {
	case WidgetText:
		v, err := decode(fld.Path, initial, textCodec())
		if err != nil {
			return nil, err
		}
		return wire(b, field.NewText(field.TextConfig{Value: v}, opts...), encodeString), nil

	case WidgetToggle:
		v, err := decode(fld.Path, initial, value.BoolCodec{})
		if err != nil {
			return nil, err
		}
		return wire(b, field.NewToggle(field.ToggleConfig{Value: v}, opts...), encodeBool), nil

	case WidgetNumber:
		return f.number(b, initial, opts)

	case WidgetDate:
		v, err := decode(fld.Path, initial, value.DateCodec{})
		if err != nil {
			return nil, err
		}
		ctrl := field.NewDate(field.DateConfig{Value: v, Layouts: s.Layouts.Date, Now: f.now}, opts...)
		return wire(b, ctrl, encodeDate), nil

	case WidgetTime:
		v, err := decode(fld.Path, initial, value.TimeCodec{})
		if err != nil {
			return nil, err
		}
		ctrl := field.NewTime(field.TimeConfig{
			Value:    v,
			Layouts:  s.Layouts.Time,
			Interval: s.TimeInterval,
			Start:    s.DefaultTime,
		}, opts...)
		return wire(b, ctrl, encodeTime), nil

	case WidgetDuration:
		v, err := decode(fld.Path, initial, value.DurationCodec{})
		if err != nil {
			return nil, err
		}
		ctrl := field.NewDuration(field.DurationConfig{Value: v, Unit: f.durationUnit(fld)}, opts...)
		return wire(b, ctrl, encodeDuration), nil

	case WidgetMonth:
		v, err := decode(fld.Path, initial, value.MonthCodec{})
		if err != nil {
			return nil, err
		}
		ctrl := field.NewMonth(field.MonthConfig{Value: v, Layouts: s.Layouts.Month, Now: f.now}, opts...)
		return wire(b, ctrl, encodeMonth), nil

	case WidgetCalendarMonth:
		v, err := decode(fld.Path, initial, value.CalendarMonthCodec{})
		if err != nil {
			return nil, err
		}
		ctrl := field.NewCalendarMonth(field.CalendarMonthConfig{Value: v, Now: f.now}, opts...)
		return wire(b, ctrl, encodeCalendarMonth), nil

	case WidgetDatetime:
		v, err := decode(fld.Path, initial, instantCodec(datetimeCodec(s)))
		if err != nil {
			return nil, err
		}
		dt := composite.NewDatetime(composite.DatetimeConfig{
			Value:        v,
			Location:     s.Location,
			DefaultTime:  s.DefaultTime,
			Now:          f.now,
			DateLayouts:  s.Layouts.Date,
			TimeLayouts:  s.Layouts.Time,
			TimeInterval: s.TimeInterval,
		}, f.compositeOptions(fld, s)...)
		return newDatetimeControl(b, dt), nil

	case WidgetSelect:
		v, err := decode(fld.Path, initial, textCodec())
		if err != nil {
			return nil, err
		}
		sel := field.NewSelect(field.SelectConfig{Options: choices(fld.Options), Value: v}, opts...)
		return newSelectControl(b, sel), nil

	case WidgetAsyncSelect:
		return f.asyncSelect(b, s, initial, opts)

	case WidgetMultiSelect:
		selected, err := decodeStrings(fld.Path, initial)
		if err != nil {
			return nil, err
		}
		options := fld.Options
		if fld.Items != nil && len(fld.Items.Options) > 0 {
			options = fld.Items.Options
		}
		list := choices(options)
		ms := multiselect.New(multiselect.Config{Options: list, Value: selected},
			multiselect.WithID(fld.Path),
			multiselect.WithLogger(f.logger),
			multiselect.WithDisabled(s.Disabled),
		)
		return newMultiControl(b, ms, list), nil

	case WidgetDateRange:
		return f.dateRange(b, s, initial)

	case WidgetDatetimeRange:
		return f.datetimeRange(b, s, initial)
	}
	return nil, fmt.Errorf("%w: %q for %s", ErrUnknownWidget, widget, fld.Path)
}

func wire[T any](b base, ctrl *field.Controller[T], encode func(T) any) Control {
	c := newScalarControl[T](b, ctrl, encode)
	ctrl.SetOnChange(c.changed)
	return c
}

func (f *Factory) number(b base, initial any, opts []field.Option) (Control, error) {
	fld := b.field
	cfg := field.NumberConfig{}
	if v, ok := fld.Rule(model.ValidationRuleMin); ok {
		cfg.Min = value.Float(v)
		cfg.Start = v
	}
	if v, ok := fld.Rule(model.ValidationRuleMax); ok {
		cfg.Max = value.Float(v)
	}
	if v, ok := fld.Rule(model.ValidationRuleStep); ok && v > 0 {
		cfg.Step = value.Float(v)
	} else if fld.Type == model.FieldTypeInteger {
		cfg.Step = value.Float(1)
	}
	v, err := decode(fld.Path, initial, value.NumberCodec{})
	if err != nil {
		return nil, err
	}
	cfg.Value = v
	return wire(b, field.NewNumber(cfg, opts...), numberEncoder(fld.Type == model.FieldTypeInteger)), nil
}

func (f *Factory) asyncSelect(b base, s config.Settings, initial any, opts []field.Option) (Control, error) {
	fld := b.field
	src, err := f.source(fld)
	if err != nil {
		return nil, err
	}
	v, err := decode(fld.Path, initial, textCodec())
	if err != nil {
		return nil, err
	}
	ac := asyncselect.New(asyncselect.Config{
		Source:   src,
		Value:    v,
		Options:  choices(fld.Options),
		Debounce: s.Debounce,
		Clock:    f.asyncClock,
		Context:  f.ctx,
	}, opts...)
	return newAsyncControl(b, ac), nil
}

func (f *Factory) source(fld model.Field) (asyncselect.OptionSource, error) {
	if src, ok := f.sources[config.NormalizeFieldPath(fld.Path)]; ok {
		return src, nil
	}
	if fld.Endpoint == nil || strings.TrimSpace(fld.Endpoint.URL) == "" {
		if len(fld.Options) > 0 {
			return asyncselect.StaticSource(choices(fld.Options)), nil
		}
		return nil, fmt.Errorf("%w: %s has no option source", ErrUnknownWidget, fld.Path)
	}
	ep := fld.Endpoint
	return asyncselect.EndpointSource{
		URL:         ep.URL,
		Method:      ep.Method,
		TermParam:   ep.TermParam,
		Params:      ep.Params,
		ResultsPath: ep.ResultsPath,
		ValueField:  ep.ValueField,
		LabelField:  ep.LabelField,
		Client:      f.client,
	}, nil
}

func (f *Factory) dateRange(b base, s config.Settings, initial any) (Control, error) {
	fld := b.field
	v, err := decodeRange(fld.Path, initial, value.DateCodec{})
	if err != nil {
		return nil, err
	}
	dr := composite.NewDateRange(composite.DateRangeConfig{
		Value:       v,
		DefaultDays: s.DefaultDays,
		Layouts:     s.Layouts.Date,
		Now:         f.now,
	}, f.compositeOptions(fld, s)...)
	parts := []Part{
		newPart(dr.StartField(), sideLabel(fld, "start")),
		newPart(dr.EndField(), sideLabel(fld, "end")),
	}
	display := func() string { return rangeDisplay(dr.StartField(), dr.EndField()) }
	c := newRangeControl(b, dr.Range, parts, encodeDate, display)
	c.disabled = s.Disabled
	return c, nil
}

func (f *Factory) datetimeRange(b base, s config.Settings, initial any) (Control, error) {
	fld := b.field
	v, err := decodeRange(fld.Path, initial, instantCodec(datetimeCodec(s)))
	if err != nil {
		return nil, err
	}
	dr := composite.NewDatetimeRange(composite.DatetimeRangeConfig{
		Value:           v,
		DefaultDuration: s.DefaultDuration.Std(),
		Location:        s.Location,
		DefaultTime:     s.DefaultTime,
		Now:             f.now,
		DateLayouts:     s.Layouts.Date,
		TimeLayouts:     s.Layouts.Time,
		TimeInterval:    s.TimeInterval,
	}, f.compositeOptions(fld, s)...)
	start, end := dr.StartSide(), dr.EndSide()
	startLabel, endLabel := sideLabel(fld, "start"), sideLabel(fld, "end")
	parts := []Part{
		newPart(start.DateField(), joinLabel(startLabel, "date")),
		newPart(start.TimeField(), joinLabel(startLabel, "time")),
		newPart(end.DateField(), joinLabel(endLabel, "date")),
		newPart(end.TimeField(), joinLabel(endLabel, "time")),
	}
	display := func() string {
		return joinRange(displayParts(start.DateField(), start.TimeField()), displayParts(end.DateField(), end.TimeField()))
	}
	c := newRangeControl(b, dr.Range, parts, encodeInstant, display)
	c.disabled = s.Disabled
	return c, nil
}

func (f *Factory) compositeOptions(fld model.Field, s config.Settings) []composite.Option {
	return []composite.Option{
		composite.WithID(fld.Path),
		composite.WithAutoErase(s.AutoErase),
		composite.WithDisabled(s.Disabled),
		composite.WithLogger(f.logger),
	}
}

// settings resolves the configuration of a field: per-field config wins over
// schema hints, which win over the shared defaults.
func (f *Factory) settings(fld model.Field) config.Settings {
	s := f.config.For(fld.Path)
	fc, _ := f.config.Field(fld.Path)
	if fld.ReadOnly {
		s.Disabled = true
	}

	if raw := fld.Hint("autoErase"); raw != "" && fc.Defaults.AutoErase == nil {
		if v, err := strconv.ParseBool(raw); err == nil {
			s.AutoErase = v
		} else {
			f.logger.Logf("widgets: %s: ignoring autoErase hint %q", fld.Path, raw)
		}
	}
	if raw := fld.Hint("defaultDays"); raw != "" && fc.Defaults.DefaultDays == 0 {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			s.DefaultDays = int(v)
		} else {
			f.logger.Logf("widgets: %s: ignoring defaultDays hint %q", fld.Path, raw)
		}
	}
	if raw := fld.Hint("defaultDuration"); raw != "" && fc.Defaults.DefaultDuration == "" {
		if v, ok := (value.DurationCodec{}).Parse(raw).Get(); ok {
			s.DefaultDuration = v
		} else {
			f.logger.Logf("widgets: %s: ignoring defaultDuration hint %q", fld.Path, raw)
		}
	}
	if raw := fld.Hint("defaultTime"); raw != "" && fc.Defaults.DefaultTime == "" {
		if v, ok := (value.TimeCodec{}).Parse(raw).Get(); ok {
			s.DefaultTime = v
		} else {
			f.logger.Logf("widgets: %s: ignoring defaultTime hint %q", fld.Path, raw)
		}
	}
	if raw := fld.Hint("interval"); raw != "" && fc.Defaults.TimeInterval == 0 {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			s.TimeInterval = v
		} else {
			f.logger.Logf("widgets: %s: ignoring interval hint %q", fld.Path, raw)
		}
	}
	if raw := fld.Hint("location"); raw != "" && fc.Defaults.Location == "" {
		if loc, err := time.LoadLocation(raw); err == nil {
			s.Location = loc
		} else {
			f.logger.Logf("widgets: %s: ignoring location hint %q: %v", fld.Path, raw, err)
		}
	}
	return s
}

func (f *Factory) durationUnit(fld model.Field) value.Duration {
	raw := fld.Hint("unit")
	if raw == "" {
		return value.Minute
	}
	if v, ok := (value.DurationCodec{}).Parse("1" + raw).Get(); ok {
		return v
	}
	if v, ok := (value.DurationCodec{}).Parse(raw).Get(); ok {
		return v
	}
	f.logger.Logf("widgets: %s: ignoring unit hint %q", fld.Path, raw)
	return value.Minute
}

// CloseAll stops pending searches of every async control.
func CloseAll(controls []Control) {
	for _, c := range controls {
		if s, ok := c.(Searcher); ok {
			s.Close()
		}
	}
}

func textCodec() value.Codec[string] {
	return value.CodecFuncs[string]{
		ParseFunc:  value.Of[string],
		FormatFunc: func(s string) string { return s },
	}
}

func datetimeCodec(s config.Settings) value.DatetimeCodec {
	return value.DatetimeCodec{
		Date:     value.DateCodec{Layouts: s.Layouts.Date},
		Time:     value.TimeCodec{Layouts: s.Layouts.Time},
		Location: s.Location,
	}
}

func choices(in []model.Choice) []value.Option {
	if len(in) == 0 {
		return nil
	}
	out := make([]value.Option, len(in))
	for i, c := range in {
		out[i] = value.Option{Value: c.Value, Label: c.Label, Disabled: c.Disabled}
	}
	return out
}

func sideLabel(fld model.Field, side string) string {
	if nested, ok := fld.NestedField(side); ok && nested.Label != "" {
		return nested.Label
	}
	return joinLabel(fld.Label, side)
}

func rangeDisplay(start, end texter) string {
	return joinRange(start.Text(), end.Text())
}

func joinRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return start + " to " + end
}
