// Package loader reads OpenAPI documents for the formfield builder.
package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

type fetchFunc func(ctx context.Context, location string) ([]byte, error)

// Loader implements pkgopenapi.Loader with one fetch function per source
// kind.
type Loader struct {
	fetch map[pkgopenapi.SourceKind]fetchFunc
	limit int64
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options. URL sources are only
// registered when a client is available.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{limit: options.MaxDocumentSize}
	if l.limit <= 0 {
		l.limit = pkgopenapi.DefaultMaxDocumentSize
	}
	l.fetch = map[pkgopenapi.SourceKind]fetchFunc{
		pkgopenapi.SourceKindFile: l.readFile,
	}
	if options.FileSystem != nil {
		files := options.FileSystem
		l.fetch[pkgopenapi.SourceKindFS] = func(ctx context.Context, name string) ([]byte, error) {
			return l.readFS(ctx, files, name)
		}
	}
	if client := httpClient(options); client != nil {
		timeout := options.RequestTimeout
		l.fetch[pkgopenapi.SourceKindURL] = func(ctx context.Context, url string) ([]byte, error) {
			return l.get(ctx, client, url, timeout)
		}
	}
	return l
}

func httpClient(options pkgopenapi.LoaderOptions) *http.Client {
	timeout := options.RequestTimeout
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: timeout}
	default:
		return nil
	}
}

// Load fetches the document behind src.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}
	fetch, ok := l.fetch[src.Kind()]
	if !ok {
		return pkgopenapi.Document{}, unavailable(src.Kind())
	}
	data, err := fetch(ctx, src.Location())
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: %w", src.Location(), err)
	}
	return pkgopenapi.NewDocument(src, data)
}

func unavailable(kind pkgopenapi.SourceKind) error {
	switch kind {
	case pkgopenapi.SourceKindURL:
		return pkgopenapi.ErrRemoteDisabled
	case pkgopenapi.SourceKindFS:
		return fmt.Errorf("%w: no filesystem configured", pkgopenapi.ErrUnsupportedSource)
	default:
		return fmt.Errorf("%w: %q", pkgopenapi.ErrUnsupportedSource, kind)
	}
}
