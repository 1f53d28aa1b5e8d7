package formfield

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-formfield/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formfield/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// NewLoader constructs a loader backed by the internal implementation.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs a parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// LoadSchema loads src and returns the schema registered under name.
func LoadSchema(ctx context.Context, loader pkgopenapi.Loader, parser pkgopenapi.Parser, src pkgopenapi.Source, name string) (pkgopenapi.Schema, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return pkgopenapi.Schema{}, err
	}
	schemas, err := parser.Schemas(ctx, doc)
	if err != nil {
		return pkgopenapi.Schema{}, err
	}
	schema, ok := schemas[name]
	if !ok {
		return pkgopenapi.Schema{}, fmt.Errorf("formfield: schema %q not found in %s", name, src.Location())
	}
	return schema, nil
}
