package backend

import (
	"context"
	"errors"
	"net/http"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login exchanges credentials for a bearer token.
// Bad credentials yield an error matching ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var res LoginResult
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("login: backend returned no token")
	}
	if res.Username == "" {
		res.Username = username
	}
	return &res, nil
}
