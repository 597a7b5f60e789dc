package authsvc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livestock-health/internal/platform/httpclient"
	"livestock-health/internal/ports/auth"
)

func newProfileServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != profilePath {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			http.Error(w, `{"detail":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestVerifier(t *testing.T, baseURL string) *Verifier {
	t.Helper()
	hc, err := httpclient.New(baseURL, time.Second)
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}
	return NewVerifier(NewWithHTTPClient(hc))
}

func TestVerifier_ApprovedVet(t *testing.T) {
	ts := newProfileServer(t, http.StatusOK, `{"success":true,"message":"ok","data":{"username":"dr.rao","email":"rao@example.com","role":"vet","status":"approved"}}`)
	v := newTestVerifier(t, ts.URL)

	c, err := v.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.UserID != "dr.rao" || c.Role != auth.RoleVet || !c.CanReadAll() {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestVerifier_PendingAccountRejected(t *testing.T) {
	ts := newProfileServer(t, http.StatusOK, `{"success":true,"data":{"username":"new.farmer","role":"farmer","status":"pending"}}`)
	v := newTestVerifier(t, ts.URL)

	if _, err := v.Verify(context.Background(), "good-token"); !errors.Is(err, ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved, got %v", err)
	}
}

func TestVerifier_BadTokenAndUpstream(t *testing.T) {
	ts := newProfileServer(t, http.StatusBadGateway, `oops`)
	v := newTestVerifier(t, ts.URL)

	if _, err := v.Verify(context.Background(), "bad-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "good-token"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := NewVerifier(c).Verify(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
