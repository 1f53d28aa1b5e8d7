package timezones

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formfield/pkg/asyncselect"
	"github.com/goliatone/go-formfield/pkg/value"
)

// Source searches zones in process.
type Source struct {
	opts Options
}

var _ asyncselect.OptionSource = (*Source)(nil)

// NewSource builds a Source.
func NewSource(fns ...OptionFn) *Source {
	return &Source{opts: NewOptions(fns...)}
}

// Search implements asyncselect.OptionSource using the default limit.
func (s *Source) Search(ctx context.Context, term string) ([]value.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	zones, err := s.opts.zones()
	if err != nil {
		return nil, fmt.Errorf("timezones: load zones: %w", err)
	}
	return SearchOptions(zones, term, 0, s.opts), nil
}
