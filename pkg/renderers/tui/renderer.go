package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/value"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

const (
	noneChoice        = "(none)"
	searchAgainChoice = "(search again)"
	maxSuggestions    = 6
)

// RenderOptions carries prefilled values and server-side errors, both keyed
// by dotted field path.
type RenderOptions struct {
	Values map[string]any
	Errors map[string][]string
}

// Renderer runs a prompt session over the controls of a form. Every answer
// goes through the field controllers, so parsing, auto-erase and range
// completion behave exactly as they do in an interactive editor.
type Renderer struct {
	driver            PromptDriver
	factory           *widgets.Factory
	outputFormat      OutputFormat
	searchTimeout     time.Duration
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat:  OutputFormatJSON,
		searchTimeout: DefaultSearchTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.factory == nil {
		r.factory = widgets.NewFactory()
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field and serializes the collected values.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return Encode(values, r.outputFormat)
}

// Collect prompts for every field and returns the values as nested maps.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, opts RenderOptions) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state := NewState(opts.Values, opts.Errors)
	controls, err := r.factory.BuildForm(form, state.Values())
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	defer widgets.CloseAll(controls)

	for _, c := range controls {
		if !c.Disabled() {
			if err := r.promptControl(ctx, c, state); err != nil {
				return nil, err
			}
		}
		v, st := c.Committed()
		record(state, c.Field().Path, v, st)
	}
	return state.Values(), nil
}

func (r *Renderer) promptControl(ctx context.Context, c widgets.Control, state *State) error {
	for _, msg := range state.ErrorsFor(c.Field().Path) {
		r.info(ctx, r.theme.ErrorPrefix+msg)
	}
	for {
		var err error
		switch typed := c.(type) {
		case widgets.Searcher:
			err = r.promptSearch(ctx, typed)
		case widgets.Chooser:
			if c.Widget() == widgets.WidgetMultiSelect {
				err = r.promptMulti(ctx, typed)
			} else {
				err = r.promptSelect(ctx, typed)
			}
		default:
			if c.Widget() == widgets.WidgetToggle {
				err = r.promptToggle(ctx, c)
			} else {
				err = r.promptParts(ctx, c)
			}
		}
		if err != nil {
			return err
		}
		if c.Field().Required && widgets.Missing(c) {
			r.info(ctx, fmt.Sprintf("%s%s is required", r.theme.ErrorPrefix, displayLabel(c.Field())))
			continue
		}
		return nil
	}
}

// promptParts asks for each text part in turn. Focus moves between parts
// the same way a keyboard would, so composites commit once at the end.
func (r *Renderer) promptParts(ctx context.Context, c widgets.Control) error {
	parts := c.Parts()
	if len(parts) == 0 {
		return nil
	}
	c.Focus(parts[0].ID())
	for i := 0; i < len(parts); {
		part := parts[i]
		resp, err := r.ask(ctx, c.Field(), part)
		if err != nil {
			c.Blur()
			return err
		}
		if strings.TrimSpace(resp) == ClearToken {
			resp = ""
		}
		part.Input(resp)
		if !part.Valid() {
			r.info(ctx, fmt.Sprintf("%sInvalid %s: %q", r.theme.ErrorPrefix, part.Label(), resp))
			continue
		}
		next := ""
		if i+1 < len(parts) {
			next = parts[i+1].ID()
		}
		c.Leave(part.ID(), next)
		i++
	}
	return nil
}

func (r *Renderer) ask(ctx context.Context, f model.Field, part widgets.Part) (string, error) {
	var suggestions []string
	if part.PickerVisible() {
		suggestions = part.Candidates()
	}
	cfg := InputConfig{
		Message: part.Label(),
		Default: part.Text(),
		Help:    displayHelp(f, suggestions),
	}
	if f.Format == "password" {
		return r.driver.Password(ctx, cfg)
	}
	if len(suggestions) > 0 {
		cfg.Suggest = func(toComplete string) []string {
			return filterPrefix(suggestions, toComplete)
		}
	}
	return r.driver.Input(ctx, cfg)
}

func (r *Renderer) promptToggle(ctx context.Context, c widgets.Control) error {
	current, _ := c.Committed()
	def, _ := current.(bool)
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(c.Field()),
		Default: def,
		Help:    c.Field().Description,
	})
	if err != nil {
		return err
	}
	part := c.Parts()[0]
	c.Focus(part.ID())
	part.Input(value.BoolCodec{}.Format(value.Of(resp)))
	c.Leave(part.ID(), "")
	return nil
}

func (r *Renderer) promptSelect(ctx context.Context, c widgets.Chooser) error {
	choices := enabled(c.Choices())
	labels := optionLabels(choices)
	if !c.Field().Required {
		labels = append(labels, noneChoice)
	}
	current, _ := c.Committed()
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(c.Field()),
		Options:      labels,
		DefaultIndex: indexOfValue(choices, current),
		Help:         c.Field().Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		clearControl(c)
		return nil
	}
	return c.Choose(choices[idx].Value)
}

func (r *Renderer) promptMulti(ctx context.Context, c widgets.Chooser) error {
	choices := enabled(c.Choices())
	current, _ := c.Committed()
	selected, _ := current.([]string)
	var defaults []int
	for _, v := range selected {
		if idx := indexOfValue(choices, v); idx >= 0 {
			defaults = append(defaults, idx)
		}
	}
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(c.Field()),
		Options:  optionLabels(choices),
		Defaults: defaults,
		Help:     c.Field().Description,
	})
	if err != nil {
		return err
	}
	values := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) {
			values = append(values, choices[idx].Value)
		}
	}
	return c.Choose(values...)
}

// promptSearch asks for a term, waits for the matching result and offers the
// options found. An empty term keeps the current value.
func (r *Renderer) promptSearch(ctx context.Context, c widgets.Searcher) error {
	label := displayLabel(c.Field())
	for {
		term, err := r.driver.Input(ctx, InputConfig{
			Message: "Search " + label,
			Default: c.Display(),
			Help:    displayHelp(c.Field(), nil),
		})
		if err != nil {
			return err
		}
		switch term = strings.TrimSpace(term); {
		case term == ClearToken:
			clearControl(c)
			return nil
		case term == "" || term == c.Display():
			if _, st := c.Committed(); st == value.StateConcrete {
				return nil
			}
		}

		c.Search(term)
		if err := r.await(ctx, c); err != nil {
			c.Blur()
			return err
		}
		if err := c.Err(); err != nil {
			r.info(ctx, fmt.Sprintf("%sSearch failed: %v", r.theme.ErrorPrefix, err))
			continue
		}
		choices := enabled(c.Choices())
		if len(choices) == 0 {
			r.info(ctx, fmt.Sprintf("No matches for %q", term))
			continue
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      append(optionLabels(choices), searchAgainChoice),
			DefaultIndex: -1,
		})
		if err != nil {
			c.Blur()
			return err
		}
		if idx < 0 || idx >= len(choices) {
			continue
		}
		return c.Choose(choices[idx].Value)
	}
}

// await drains search results until the one for the current term arrives.
// Results for older terms are discarded by Apply.
func (r *Renderer) await(ctx context.Context, c widgets.Searcher) error {
	timer := time.NewTimer(r.searchTimeout)
	defer timer.Stop()
	for c.Loading() {
		select {
		case res := <-c.Results():
			c.Apply(res)
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return ErrSearchTimeout
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func clearControl(c widgets.Control) {
	parts := c.Parts()
	if len(parts) == 0 {
		return
	}
	c.Focus(parts[0].ID())
	parts[0].Input("")
	c.Blur()
}

func record(state *State, path string, v any, st value.State) {
	if st != value.StateConcrete {
		state.Delete(path)
		return
	}
	_ = state.SetValue(path, v)
}

// Encode serializes collected values in format; unknown formats fall back to
// JSON.
func Encode(values map[string]any, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field, suggestions []string) string {
	parts := []string{}
	if help := field.Hint("helpText"); help != "" {
		parts = append(parts, help)
	} else if field.Description != "" {
		parts = append(parts, field.Description)
	}
	if len(suggestions) > 0 {
		shown := suggestions[:min(len(suggestions), maxSuggestions)]
		parts = append(parts, "Suggestions: "+strings.Join(shown, ", "))
	}
	parts = append(parts, fmt.Sprintf("Enter %q to clear.", ClearToken))
	return strings.Join(parts, " ")
}

func filterPrefix(candidates []string, prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			out = append(out, c)
		}
	}
	return out
}

func enabled(options []value.Option) []value.Option {
	out := make([]value.Option, 0, len(options))
	for _, opt := range options {
		if !opt.Disabled {
			out = append(out, opt)
		}
	}
	return out
}

func optionLabels(options []value.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.DisplayLabel()
	}
	return out
}

func indexOfValue(options []value.Option, v any) int {
	s, ok := v.(string)
	if !ok {
		return -1
	}
	for i, opt := range options {
		if opt.Value == s {
			return i
		}
	}
	return -1
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []string:
		for _, val := range v {
			out.Add(prefix+"[]", val)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(v)) {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []string:
		fmt.Fprintf(b, "%s=%s\n", prefix, strings.Join(v, ", "))
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
