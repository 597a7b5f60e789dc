package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	DefaultTimeout  = 10 * time.Second
	RequestIDHeader = "X-Request-ID"

	maxBody = 1 << 20
)

// Client hace GETs JSON contra un servicio externo con base URL fija.
type Client struct {
	http    *http.Client
	baseURL *url.URL
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(baseURL))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}, baseURL: u}, nil
}

func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// StatusError es una respuesta no-2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

// GetJSON decodifica la respuesta de GET path en out. El request id de chi
// presente en ctx viaja como X-Request-ID.
func (c *Client) GetJSON(ctx context.Context, path string, header http.Header, out any) error {
	if c == nil || c.http == nil {
		return errors.New("httpclient: nil client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	req.Header.Set("Accept", "application/json")
	if rid := chimw.GetReqID(ctx); rid != "" {
		req.Header.Set(RequestIDHeader, rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}
