package timezones

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goliatone/go-formfield/pkg/value"
)

// HTTPError is an error that chooses its response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a ready-made HTTPError for guards.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns Code, or 500 when unset.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []value.Option `json:"data"`
}

// NewHandler builds the JSON search handler. It answers GET and HEAD; data
// is always an array, possibly empty.
func NewHandler(fns ...OptionFn) http.Handler {
	return handler(NewOptions(fns...))
}

func handler(opts Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				code := guardStatus(err)
				opts.Logger.Logf("timezones: guard rejected %s: %v", r.URL.Path, err)
				http.Error(w, http.StatusText(code), code)
				return
			}
		}

		zones, err := opts.zones()
		if err != nil {
			opts.Logger.Logf("timezones: load zones: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		query := r.URL.Query()
		limit, _ := strconv.Atoi(query.Get(opts.LimitParam))
		results := SearchOptions(zones, query.Get(opts.TermParam), limit, opts)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if err := json.NewEncoder(w).Encode(optionsResponse{Data: results}); err != nil {
			opts.Logger.Logf("timezones: encode response: %v", err)
		}
	})
}

func guardStatus(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return http.StatusForbidden
}
