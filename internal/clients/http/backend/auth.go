package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var out LoginResponse
	if err := c.do(ctx, req, &out); err != nil {
		return "", err
	}
	token := strings.TrimSpace(out.Token)
	if token == "" {
		return "", errors.New("backend login returned an empty token")
	}
	return token, nil
}

// Register creates a store owner account.
func (c *Client) Register(ctx context.Context, payload RegisterRequest) error {
	req, err := jsonRequest(http.MethodPost, "/auth/register", payload)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
