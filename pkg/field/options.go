package field

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/picker"
)

type settings struct {
	id        string
	autoErase bool
	kind      picker.Kind
	logger    debug.Logger
	disabled  bool
}

func defaultSettings() settings {
	return settings{
		autoErase: true,
		logger:    debug.Default(),
	}
}

func resolveSettings(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	return s
}

// Option configures behaviour that does not depend on the value type.
type Option func(*settings)

// WithID assigns a stable identifier; composites use it to tell internal
// focus transfers from real blurs. A random id is generated otherwise.
func WithID(id string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			s.id = trimmed
		}
	}
}

// WithAutoErase controls what blur does with unparseable text: erase it
// (default) or restore the last committed value.
func WithAutoErase(enabled bool) Option {
	return func(s *settings) {
		s.autoErase = enabled
	}
}

// WithPickerKind overrides the popup kind chosen by the typed constructor.
func WithPickerKind(kind picker.Kind) Option {
	return func(s *settings) {
		s.kind = kind
	}
}

// WithLogger routes diagnostics.
func WithLogger(logger debug.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDisabled starts the controller disabled.
func WithDisabled(disabled bool) Option {
	return func(s *settings) {
		s.disabled = disabled
	}
}
