package composite

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/field"
)

type settings struct {
	id        string
	autoErase bool
	disabled  bool
	logger    debug.Logger
}

func resolveSettings(opts []Option) settings {
	s := settings{autoErase: true, logger: debug.Default()}
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

// memberOptions derives the options of the sub-field named suffix.
func (s settings) memberOptions(suffix string) []field.Option {
	return []field.Option{
		field.WithID(s.id + "-" + suffix),
		field.WithAutoErase(s.autoErase),
		field.WithLogger(s.logger),
	}
}

// child derives the settings of a nested composite named suffix.
func (s settings) child(suffix string) []Option {
	return []Option{
		WithID(s.id + "-" + suffix),
		WithAutoErase(s.autoErase),
		WithLogger(s.logger),
	}
}

// Option configures a composite.
type Option func(*settings)

// WithID sets the composite id. Member ids are derived from it
// ("<id>-date", "<id>-start-time", ...).
func WithID(id string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			s.id = trimmed
		}
	}
}

// WithAutoErase is forwarded to every member.
func WithAutoErase(enabled bool) Option {
	return func(s *settings) { s.autoErase = enabled }
}

// WithDisabled starts the composite disabled.
func WithDisabled(disabled bool) Option {
	return func(s *settings) { s.disabled = disabled }
}

// WithLogger routes diagnostics.
func WithLogger(logger debug.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
