package openapi

import "context"

// Parser extracts named schemas from a Document. Component schemas keep their
// component name; operation request bodies are keyed by operationId.
type Parser interface {
	Schemas(ctx context.Context, doc Document) (map[string]Schema, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// Validate runs kin-openapi validation before extracting schemas.
	Validate bool

	// IncludeOperations adds request body schemas keyed by operationId.
	IncludeOperations bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithOperations toggles extraction of operation request bodies.
func WithOperations(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.IncludeOperations = enabled
	}
}

// NewParserOptions applies options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Validate: true, IncludeOperations: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
