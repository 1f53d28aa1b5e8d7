package value

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"

	"github.com/goliatone/go-formfield/pkg/debug"
)

// Option is one entry of an externally supplied options list.
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

var labelPolicy = bluemonday.StrictPolicy()

// SanitizeLabel strips markup from an option label and returns plain text.
func SanitizeLabel(label string) string {
	if !strings.ContainsAny(label, "<>&") {
		return strings.TrimSpace(label)
	}
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(label)))
}

// DisplayLabel returns the sanitised label, falling back to the value.
func (o Option) DisplayLabel() string {
	if label := SanitizeLabel(o.Label); label != "" {
		return label
	}
	return o.Value
}

// FindOption looks an option up by value.
func FindOption(options []Option, v string) (Option, bool) {
	for _, opt := range options {
		if opt.Value == v {
			return opt, true
		}
	}
	return Option{}, false
}

// FilterOptions returns the options matching every whitespace separated term
// of query (case-insensitive substring match against label or value), minus
// disabled options and any value listed in exclude. Order is preserved.
func FilterOptions(options []Option, query string, exclude []string) []Option {
	folder := cases.Fold()
	terms := strings.Fields(folder.String(query))

	skip := make(map[string]struct{}, len(exclude))
	for _, v := range exclude {
		skip[v] = struct{}{}
	}

	out := make([]Option, 0, len(options))
	for _, opt := range options {
		if opt.Disabled {
			continue
		}
		if _, excluded := skip[opt.Value]; excluded {
			continue
		}
		label := folder.String(opt.DisplayLabel())
		val := folder.String(opt.Value)
		matched := true
		for _, term := range terms {
			if !strings.Contains(label, term) && !strings.Contains(val, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, opt)
		}
	}
	return out
}

// SelectCodec maps option labels to option values. Options are owned by the
// caller; the codec only reads them.
type SelectCodec struct {
	Options []Option
	Logger  debug.Logger
}

func (c SelectCodec) logger() debug.Logger {
	if c.Logger == nil {
		return debug.Default()
	}
	return c.Logger
}

// Parse implements Codec. Labels match case-insensitively; raw values match
// exactly.
func (c SelectCodec) Parse(text string) Value[string] {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty[string]()
	}
	for _, opt := range c.Options {
		if opt.Disabled {
			continue
		}
		if strings.EqualFold(opt.DisplayLabel(), trimmed) {
			return Of(opt.Value)
		}
	}
	if opt, ok := FindOption(c.Options, trimmed); ok && !opt.Disabled {
		return Of(opt.Value)
	}
	return Unresolved[string]()
}

// Format implements Codec. A value missing from the options logs a
// diagnostic and formats as "".
func (c SelectCodec) Format(v Value[string]) string {
	raw, ok := v.Get()
	if !ok {
		return ""
	}
	opt, found := FindOption(c.Options, raw)
	if !found {
		c.logger().Logf("select: value %q is not present in options", raw)
		return ""
	}
	return opt.DisplayLabel()
}
