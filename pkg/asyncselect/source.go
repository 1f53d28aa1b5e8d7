package asyncselect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-formfield/pkg/value"
)

// OptionSource answers a search term with options. It is the external search
// collaborator; the controller never fetches anything on its own.
type OptionSource interface {
	Search(ctx context.Context, term string) ([]value.Option, error)
}

// SourceFunc adapts a function to OptionSource.
type SourceFunc func(ctx context.Context, term string) ([]value.Option, error)

// Search implements OptionSource.
func (f SourceFunc) Search(ctx context.Context, term string) ([]value.Option, error) {
	return f(ctx, term)
}

// StaticSource filters a fixed list locally.
type StaticSource []value.Option

// Search implements OptionSource.
func (s StaticSource) Search(_ context.Context, term string) ([]value.Option, error) {
	return value.FilterOptions(s, term, nil), nil
}

// EndpointSource queries a JSON endpoint. The term is sent as the TermParam
// query parameter; options are read from the array at ResultsPath (dotted,
// "data" by default) using ValueField and LabelField (dotted paths too).
type EndpointSource struct {
	URL         string
	Method      string
	TermParam   string
	Params      map[string]string
	ResultsPath string
	ValueField  string
	LabelField  string
	Client      *http.Client
}

// Search implements OptionSource.
func (s EndpointSource) Search(ctx context.Context, term string) ([]value.Option, error) {
	reqURL, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("asyncselect: parse url: %w", err)
	}
	q := reqURL.Query()
	for k, v := range s.Params {
		q.Set(k, v)
	}
	q.Set(orDefault(s.TermParam, "q"), term)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, orDefault(s.Method, http.MethodGet), reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("asyncselect: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asyncselect: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("asyncselect: unexpected status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("asyncselect: decode: %w", err)
	}

	valueField := orDefault(s.ValueField, "id")
	labelField := orDefault(s.LabelField, "name")
	var opts []value.Option
	for _, item := range extractResults(payload, orDefault(s.ResultsPath, "data")) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		val := pickValue(obj, valueField)
		if val == "" {
			continue
		}
		opts = append(opts, value.Option{Value: val, Label: pickValue(obj, labelField)})
	}
	return opts, nil
}

func extractResults(payload any, path string) []any {
	cur := payload
	if path != "." {
		for _, segment := range strings.Split(path, ".") {
			node, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = node[segment]
		}
	}
	items, _ := cur.([]any)
	return items
}

func pickValue(m map[string]any, path string) string {
	var cur any = m
	for _, segment := range strings.Split(path, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = node[segment]
	}
	if cur == nil {
		return ""
	}
	return fmt.Sprint(cur)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
