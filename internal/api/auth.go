package api

import (
	"context"
	"net/http"

	"coachboard/internal/metrics"
)

// Login exchanges credentials for a session. The backend sets the session
// cookie on the response; the jar keeps it for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string, opts ...RequestOption) (*Token, error) {
	token, err := doJSON[Token](ctx, c, metrics.OpLogin, http.MethodPost, "/auth/login", nil,
		LoginRequest{Email: email, Password: password}, opts)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Logout asks the backend to clear the session cookie
func (c *Client) Logout(ctx context.Context, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpLogout, http.MethodPost, "/auth/logout", nil, opts)
}

// Me returns the user bound to the current session
func (c *Client) Me(ctx context.Context, opts ...RequestOption) (*User, error) {
	user, err := doJSON[User](ctx, c, metrics.OpMe, http.MethodGet, "/auth/me", nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new user account
func (c *Client) Register(ctx context.Context, in RegisterRequest, opts ...RequestOption) (*User, error) {
	user, err := doJSON[User](ctx, c, metrics.OpRegister, http.MethodPost, "/auth/register", nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Health checks the API root
func (c *Client) Health(ctx context.Context, opts ...RequestOption) (*HealthStatus, error) {
	status, err := doJSON[HealthStatus](ctx, c, metrics.OpHealth, http.MethodGet, "/", nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
