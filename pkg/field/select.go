package field

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/picker"
	"github.com/goliatone/go-formfield/pkg/value"
)

// SelectConfig configures NewSelect.
type SelectConfig struct {
	Options  []value.Option
	Value    value.Value[string]
	OnChange ChangeFunc[string]
	// Unfiltered offers every enabled option regardless of the buffer, for
	// lists that were already filtered by a remote search.
	Unfiltered bool
}

// Select is a single-choice field over an options list. Its value is the
// option value; the buffer shows the option label.
type Select struct {
	*Controller[string]
	codec      *value.SelectCodec
	unfiltered bool
}

// NewSelect builds a select field with a list picker.
func NewSelect(cfg SelectConfig, opts ...Option) *Select {
	resolved := resolveSettings(opts)
	s := &Select{
		codec:      &value.SelectCodec{Options: cloneOptions(cfg.Options), Logger: resolved.logger},
		unfiltered: cfg.Unfiltered,
	}
	s.Controller = New(Config[string]{
		Codec:      s.codec,
		Value:      cfg.Value,
		OnChange:   cfg.OnChange,
		Candidates: s.candidates,
		Equal:      func(a, b string) bool { return a == b },
	}, withKind(picker.KindList, opts)...)
	return s
}

// Options returns a copy of the current options.
func (s *Select) Options() []value.Option {
	return cloneOptions(s.codec.Options)
}

// SetOptions replaces the options list. An unfocused field reformats its
// buffer so a value that just became available shows its label.
func (s *Select) SetOptions(options []value.Option) {
	s.codec.Options = cloneOptions(options)
	if s.Focused() {
		s.refilter()
		return
	}
	s.ResetTextFromValue()
}

// CandidateOptions returns the filtered candidates as options.
func (s *Select) CandidateOptions() []value.Option {
	out := make([]value.Option, 0, len(s.filtered))
	for _, v := range s.filtered {
		if opt, ok := value.FindOption(s.codec.Options, v); ok {
			out = append(out, opt)
		}
	}
	return out
}

// PickerSelect applies a choice. Values missing from the options are logged
// and ignored.
func (s *Select) PickerSelect(v string) {
	opt, ok := value.FindOption(s.codec.Options, v)
	if !ok || opt.Disabled {
		s.logger.Logf("select %s: ignoring unknown option %q", s.id, v)
		return
	}
	s.Controller.PickerSelect(v)
}

// Enter accepts the highlighted option through PickerSelect.
func (s *Select) Enter() bool {
	if s.phase != PhasePicking {
		return false
	}
	if idx := s.nav.Index(); idx >= 0 && idx < len(s.filtered) {
		s.PickerSelect(s.filtered[idx])
		return true
	}
	return s.Controller.Enter()
}

// candidates filters by the buffer, except when the buffer still shows the
// selected label: then every option is offered.
func (s *Select) candidates(query string) []string {
	if s.unfiltered {
		query = ""
	}
	if s.Controller != nil {
		if selected, ok := s.external.Get(); ok {
			if opt, found := value.FindOption(s.codec.Options, selected); found &&
				strings.EqualFold(strings.TrimSpace(query), opt.DisplayLabel()) {
				query = ""
			}
		}
	}
	matched := value.FilterOptions(s.codec.Options, query, nil)
	out := make([]string, len(matched))
	for i, opt := range matched {
		out[i] = opt.Value
	}
	return out
}

func cloneOptions(options []value.Option) []value.Option {
	if options == nil {
		return nil
	}
	return append([]value.Option(nil), options...)
}
