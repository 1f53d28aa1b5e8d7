package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

func (l *Loader) readFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.read(ctx, f)
}

func (l *Loader) readFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("fs path is required")
	}
	f, err := files.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.read(ctx, f)
}

func (l *Loader) get(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if resp.ContentLength > l.limit {
		return nil, fmt.Errorf("%w: %d bytes", pkgopenapi.ErrDocumentTooLarge, resp.ContentLength)
	}
	return l.read(ctx, resp.Body)
}

// read consumes r up to the size limit; one extra byte detects overflow.
func (l *Loader) read(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.limit {
		return nil, fmt.Errorf("%w: over %d bytes", pkgopenapi.ErrDocumentTooLarge, l.limit)
	}
	return data, nil
}
