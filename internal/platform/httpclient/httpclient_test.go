package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestGetJSON_ForwardsHeadersAndDecodes(t *testing.T) {
	var gotPath, gotRID, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRID = r.Header.Get(RequestIDHeader)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/accounts", time.Second)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-42")
	var out struct {
		OK bool `json:"ok"`
	}
	header := http.Header{"Authorization": {"Bearer t"}}
	if err := c.GetJSON(ctx, "/api/v1/profile/", header, &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected decoded body")
	}
	if gotPath != "/accounts/api/v1/profile/" {
		t.Fatalf("expected path joined to base url, got %q", gotPath)
	}
	if gotRID != "req-42" || gotAuth != "Bearer t" {
		t.Fatalf("expected request id and auth forwarded, got %q %q", gotRID, gotAuth)
	}
}

func TestGetJSON_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var out map[string]any
	err = c.GetJSON(context.Background(), "/x", nil, &out)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusTeapot || statusErr.Body != "nope" {
		t.Fatalf("expected StatusError 418 body=nope, got %v", err)
	}
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	for _, raw := range []string{"", "accounts.local", "/api"} {
		if _, err := New(raw, 0); err == nil {
			t.Fatalf("expected error for base url %q", raw)
		}
	}
}
