package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"livestock-health/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier contra el servicio de cuentas.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.Profile(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("auth verify failed: %w", err)
	}

	switch claims.Role {
	case auth.RoleFarmer, auth.RoleVet, auth.RoleAdmin:
	default:
		return auth.Claims{}, fmt.Errorf("auth verify failed: unknown role %q", claims.Role)
	}

	return claims, nil
}
