package model

import (
	"github.com/goliatone/go-formfield/internal/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// Builder converts OpenAPI schemas into form models.
type Builder interface {
	Build(name string, schema pkgopenapi.Schema) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return model.New(model.Options{Labeler: cfg.labeler})
}
