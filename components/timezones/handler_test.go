package timezones

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/value"
)

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeOptions(t *testing.T, rec *httptest.ResponseRecorder) []value.Option {
	t.Helper()
	var payload struct {
		Data []value.Option `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data == nil {
		t.Fatalf("data should be an array")
	}
	return payload.Data
}

func TestHandler_EmptyTermReturnsEmptyArray(t *testing.T) {
	rec := serve(t, NewHandler(WithZones([]string{"UTC"}), WithLogger(debug.Nop())), http.MethodGet, "/api/timezones")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if got := decodeOptions(t, rec); len(got) != 0 {
		t.Fatalf("expected no options, got %v", got)
	}
}

func TestHandler_SearchWithClampedLimit(t *testing.T) {
	h := NewHandler(
		WithZones([]string{"America/Chicago", "America/New_York", "Europe/Paris", "UTC"}),
		WithMaxLimit(2),
	)
	rec := serve(t, h, http.MethodGet, "/api/timezones?q=america&limit=10")
	want := []value.Option{
		{Value: "America/Chicago", Label: "America/Chicago"},
		{Value: "America/New_York", Label: "America/New York"},
	}
	if diff := cmp.Diff(want, decodeOptions(t, rec)); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_CustomParams(t *testing.T) {
	h := NewHandler(WithZones([]string{"UTC", "Europe/Paris"}), WithTermParam("search"), WithLimitParam("l"))
	got := decodeOptions(t, serve(t, h, http.MethodGet, "/?search=utc&l=5"))
	if len(got) != 1 || got[0].Value != "UTC" {
		t.Fatalf("unexpected options %v", got)
	}
}

func TestHandler_Rejections(t *testing.T) {
	guarded := NewHandler(
		WithZones([]string{"UTC"}),
		WithLogger(debug.Nop()),
		WithGuard(func(*http.Request) error { return StatusError{Code: http.StatusUnauthorized} }),
	)
	if rec := serve(t, guarded, http.MethodGet, "/?q=utc"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	plain := NewHandler(WithZones([]string{"UTC"}))
	rec := serve(t, plain, http.MethodPost, "/?q=utc")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec := serve(t, NewHandler(WithZones([]string{"UTC"})), http.MethodHead, "/?q=utc")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("unexpected HEAD response %d %q", rec.Code, rec.Body.String())
	}
}
