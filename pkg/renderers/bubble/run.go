package bubble

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

// ErrAborted is returned by Run when the user quits without submitting.
var ErrAborted = errors.New("bubble: aborted")

// Run builds the controls of form, runs the interactive editor and returns
// the submitted values as nested maps.
func Run(ctx context.Context, form model.FormModel, values map[string]any, factory *widgets.Factory, opts ...Option) (map[string]any, error) {
	if factory == nil {
		factory = widgets.NewFactory()
	}
	controls, err := factory.BuildForm(form, values)
	if err != nil {
		return nil, fmt.Errorf("bubble: %w", err)
	}
	defer widgets.CloseAll(controls)

	if form.Title != "" {
		opts = append([]Option{WithTitle(form.Title)}, opts...)
	}
	final, err := tea.NewProgram(NewForm(controls, opts...), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("bubble: %w", err)
	}
	result, ok := final.(Form)
	if !ok || !result.Submitted() {
		return nil, ErrAborted
	}
	return widgets.Values(result.Controls()), nil
}
