package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

func sprintsPath(projectID int) string {
	return fmt.Sprintf("/projects/%d/sprints", projectID)
}

// ListSprints implements secondary.SprintAPI.
func (c *Client) ListSprints(ctx context.Context, projectID int) ([]models.Sprint, error) {
	return getList[models.Sprint](ctx, c, sprintsPath(projectID), "sprints")
}

// GetSprint implements secondary.SprintAPI.
func (c *Client) GetSprint(ctx context.Context, projectID, sprintID int) (*models.Sprint, error) {
	return send[models.Sprint](ctx, c, http.MethodGet, fmt.Sprintf("%s/%d", sprintsPath(projectID), sprintID), nil)
}

// CreateSprint implements secondary.SprintAPI.
func (c *Client) CreateSprint(ctx context.Context, projectID int, input models.SprintInput) (*models.Sprint, error) {
	return send[models.Sprint](ctx, c, http.MethodPost, sprintsPath(projectID), input)
}

// UpdateSprint implements secondary.SprintAPI.
func (c *Client) UpdateSprint(ctx context.Context, projectID, sprintID int, input models.SprintInput) (*models.Sprint, error) {
	return send[models.Sprint](ctx, c, http.MethodPut, fmt.Sprintf("%s/%d", sprintsPath(projectID), sprintID), input)
}

// DeleteSprint implements secondary.SprintAPI.
func (c *Client) DeleteSprint(ctx context.Context, projectID, sprintID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", sprintsPath(projectID), sprintID), nil, nil)
}

var _ secondary.SprintAPI = (*Client)(nil)
