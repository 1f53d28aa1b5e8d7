// Package model defines the field descriptions the widget factory and the
// renderers consume. Builders live in internal/model and return the types
// aliased here. Schema extensions under the x-formfield namespace flow into
// Field.Metadata; the curated UIHints map keeps widget directives such as
// widget, step, interval, defaultTime and layouts. The x-endpoint extension
// becomes Field.Endpoint and feeds async option sources.
package model
