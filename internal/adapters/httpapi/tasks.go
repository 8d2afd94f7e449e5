package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

func featureTasksPath(projectID, featureID int) string {
	return fmt.Sprintf("/projects/%d/features/%d/tasks", projectID, featureID)
}

// ListTasks implements secondary.TaskAPI.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	return getList[models.Task](ctx, c, "/tasks", "tasks")
}

// ListFeatureTasks implements secondary.TaskAPI.
func (c *Client) ListFeatureTasks(ctx context.Context, projectID, featureID int) ([]models.Task, error) {
	return getList[models.Task](ctx, c, featureTasksPath(projectID, featureID), "tasks")
}

// CreateTask implements secondary.TaskAPI.
func (c *Client) CreateTask(ctx context.Context, projectID, featureID int, input models.TaskInput) (*models.Task, error) {
	return send[models.Task](ctx, c, http.MethodPost, featureTasksPath(projectID, featureID), input)
}

// UpdateTask implements secondary.TaskAPI.
func (c *Client) UpdateTask(ctx context.Context, taskID int, input models.TaskInput) (*models.Task, error) {
	return send[models.Task](ctx, c, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), input)
}

// ToggleTask implements secondary.TaskAPI.
func (c *Client) ToggleTask(ctx context.Context, taskID int) (*models.Task, error) {
	return send[models.Task](ctx, c, http.MethodPatch, fmt.Sprintf("/tasks/%d/toggle", taskID), nil)
}

// DeleteTask implements secondary.TaskAPI.
func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil)
}

var _ secondary.TaskAPI = (*Client)(nil)
