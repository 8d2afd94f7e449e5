package httpapi

import (
	"context"
	"fmt"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ListUsers implements secondary.UserAPI.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return getList[models.User](ctx, c, "/users", "users")
}

// ListProjectUsers implements secondary.UserAPI.
func (c *Client) ListProjectUsers(ctx context.Context, projectID int) ([]models.User, error) {
	return getList[models.User](ctx, c, fmt.Sprintf("/projects/%d/users", projectID), "users")
}

var _ secondary.UserAPI = (*Client)(nil)
