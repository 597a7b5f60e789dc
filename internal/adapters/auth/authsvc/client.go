package authsvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"livestock-health/internal/platform/httpclient"
	"livestock-health/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("auth service client not configured")
	ErrUnauthorized  = errors.New("auth service unauthorized")
	ErrNotApproved   = errors.New("account not approved")
	ErrUpstream      = errors.New("auth service upstream error")
)

const profilePath = "/api/v1/profile/"

// Config del cliente del servicio de cuentas (farmers, vets, admins).
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return &Client{}, nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	hc, err := httpclient.New(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewWithHTTPClient permite inyectar un httpclient ya armado (tests).
func NewWithHTTPClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL() != ""
}

// profileEnvelope es la respuesta de GET /api/v1/profile/.
type profileEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
		Status   string `json:"status"` // pending | approved | declined
	} `json:"data"`
}

// Profile trae el perfil del dueño del token. Cuentas no aprobadas devuelven ErrNotApproved.
func (c *Client) Profile(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out profileEnvelope
	header := http.Header{"Authorization": {"Bearer " + token}}
	if err := c.http.GetJSON(ctx, profilePath, header, &out); err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && (statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !out.Success {
		return auth.Claims{}, fmt.Errorf("%w: %s", ErrUpstream, out.Message)
	}

	if !strings.EqualFold(out.Data.Status, "approved") {
		return auth.Claims{}, ErrNotApproved
	}

	username := strings.TrimSpace(out.Data.Username)
	if username == "" {
		return auth.Claims{}, fmt.Errorf("%w: profile missing username", ErrUpstream)
	}

	return auth.Claims{
		UserID: username,
		Email:  strings.TrimSpace(out.Data.Email),
		Role:   auth.Role(strings.ToLower(strings.TrimSpace(out.Data.Role))),
	}, nil
}
