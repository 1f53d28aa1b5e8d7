package timezones

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Component bundles one Options value behind the handler, the in-process
// source and the endpoint description a form field needs to reach the
// handler over HTTP.
type Component struct {
	opts Options
}

// New builds a Component.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns the resolved options.
func (c *Component) Options() Options { return c.opts }

// Handler returns the JSON search handler.
func (c *Component) Handler() http.Handler { return handler(c.opts) }

// Source returns an in-process option source sharing the options.
func (c *Component) Source() *Source { return &Source{opts: c.opts} }

// Register mounts the handler below basePath and returns the pattern.
func (c *Component) Register(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", errors.New("timezones: missing mux")
	}
	pattern := MountPath(basePath, c.opts.RoutePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}

// Endpoint describes the mounted handler for a field's async select. baseURL
// is the server origin plus the base path passed to Register.
func (c *Component) Endpoint(baseURL string) *model.Endpoint {
	origin := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &model.Endpoint{
		URL:         origin + MountPath("", c.opts.RoutePath),
		Method:      http.MethodGet,
		TermParam:   c.opts.TermParam,
		ResultsPath: "data",
		ValueField:  "value",
		LabelField:  "label",
	}
}

// MountPath joins basePath and routePath into a rooted pattern.
func MountPath(basePath, routePath string) string {
	routePath = "/" + strings.TrimLeft(strings.TrimSpace(routePath), "/")
	basePath = strings.Trim(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		return routePath
	}
	return "/" + basePath + routePath
}
