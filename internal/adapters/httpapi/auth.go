package httpapi

import (
	"context"
	"net/http"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// Restore implements secondary.AuthAPI. An unauthorized response means no
// session and is not an error.
func (c *Client) Restore(ctx context.Context) (*models.User, error) {
	user, err := send[models.User](ctx, c, http.MethodGet, "/auth", nil)
	if IsStatus(err, http.StatusUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return user, nil
}

// Login implements secondary.AuthAPI.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	return send[models.User](ctx, c, http.MethodPost, "/auth/login", creds)
}

// Signup implements secondary.AuthAPI.
func (c *Client) Signup(ctx context.Context, signup models.Signup) (*models.User, error) {
	return send[models.User](ctx, c, http.MethodPost, "/auth/signup", signup)
}

// Logout implements secondary.AuthAPI.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/logout", nil, nil)
}

var (
	_ secondary.AuthAPI = (*Client)(nil)
	_ secondary.Backend = (*Client)(nil)
)
