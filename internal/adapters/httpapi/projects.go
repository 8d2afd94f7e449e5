package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ListProjects implements secondary.ProjectAPI.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	return getList[models.Project](ctx, c, "/projects", "projects")
}

// GetProject implements secondary.ProjectAPI.
func (c *Client) GetProject(ctx context.Context, id int) (*models.Project, error) {
	return send[models.Project](ctx, c, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil)
}

// CreateProject implements secondary.ProjectAPI.
func (c *Client) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	return send[models.Project](ctx, c, http.MethodPost, "/projects", input)
}

// UpdateProject implements secondary.ProjectAPI.
func (c *Client) UpdateProject(ctx context.Context, id int, input models.ProjectInput) (*models.Project, error) {
	return send[models.Project](ctx, c, http.MethodPut, fmt.Sprintf("/projects/%d", id), input)
}

// DeleteProject implements secondary.ProjectAPI.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

var _ secondary.ProjectAPI = (*Client)(nil)
