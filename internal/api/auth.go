package api

import (
	"context"
	"net/http"

	"frontend_go/internal/domain"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new account. No token is required or returned; the
// caller logs in afterwards.
func (c *Client) Register(ctx context.Context, in domain.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", in, nil)
}

// Login exchanges credentials for an opaque bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}
