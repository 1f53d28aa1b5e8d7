package timezones

import (
	"net/http"
	"slices"

	"github.com/goliatone/go-formfield/pkg/debug"
)

const (
	defaultRoutePath = "/api/timezones"
	defaultLimit     = 50
	defaultMaxLimit  = 200
)

// GuardFunc authorizes a handler request. Returning an error that carries a
// status code (see StatusError) sets the response status; other errors
// answer 403.
type GuardFunc func(r *http.Request) error

// Options configures the search, the handler and the source.
type Options struct {
	RoutePath    string
	TermParam    string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	// ListAll makes an empty term return the first zones instead of none.
	ListAll bool
	Guard   GuardFunc
	// Zones replaces the embedded list.
	Zones  []string
	Logger debug.Logger
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// NewOptions applies fns over the defaults and repairs unset fields.
func NewOptions(fns ...OptionFn) Options {
	opts := Options{}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.TermParam == "" {
		opts.TermParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	if opts.Logger == nil {
		opts.Logger = debug.Default()
	}
	opts.Zones = slices.Clone(opts.Zones)
	return opts
}

// WithRoutePath sets the path the handler mounts at below a base path.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) { o.RoutePath = path }
}

// WithTermParam sets the query parameter carrying the search term.
func WithTermParam(name string) OptionFn {
	return func(o *Options) { o.TermParam = name }
}

// WithLimitParam sets the query parameter carrying the result limit.
func WithLimitParam(name string) OptionFn {
	return func(o *Options) { o.LimitParam = name }
}

// WithDefaultLimit sets the limit used when a request names none.
func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

// WithMaxLimit caps requested limits.
func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

// WithListAll makes an empty term list zones.
func WithListAll(enabled bool) OptionFn {
	return func(o *Options) { o.ListAll = enabled }
}

// WithGuard installs a request guard on the handler.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

// WithZones replaces the embedded zone list.
func WithZones(zones []string) OptionFn {
	return func(o *Options) { o.Zones = slices.Clone(zones) }
}

// WithLogger sets the diagnostics sink.
func WithLogger(logger debug.Logger) OptionFn {
	return func(o *Options) { o.Logger = logger }
}

// clampLimit maps a requested limit to the effective one: 0 means the
// default, negatives mean nothing.
func (o Options) clampLimit(limit int) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		limit = o.DefaultLimit
	}
	return min(limit, o.MaxLimit)
}

func (o Options) zones() ([]string, error) {
	if o.Zones != nil {
		return o.Zones, nil
	}
	return loadDefault()
}
