package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Login exchanges manager credentials for an API token. Authentication is
// entirely the service's concern; the dashboard never sees a password hash.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp struct {
		AuthToken string `json:"authToken"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/managers/login", "", body, &resp); err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	if resp.AuthToken == "" {
		return "", errors.New("login response carried no token")
	}
	return resp.AuthToken, nil
}
