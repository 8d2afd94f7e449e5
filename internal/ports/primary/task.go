package primary

import (
	"context"

	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/models"
)

// TaskService defines the primary port for task operations.
type TaskService interface {
	// LoadTasks fetches the tasks assigned to the session user.
	LoadTasks(ctx context.Context) []models.Task

	// LoadFeatureTasks fetches every task of a feature.
	LoadFeatureTasks(ctx context.Context, projectID, featureID int) []models.Task

	CreateTask(ctx context.Context, projectID, featureID int, input models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID int, input models.TaskInput) (*models.Task, error)

	// ToggleTask flips a task between Completed and Not Started.
	ToggleTask(ctx context.Context, taskID int) *models.Task

	DeleteTask(ctx context.Context, taskID int) bool

	Task(id int) (models.Task, bool)
	TasksByFeature(featureID int) []models.Task

	// EnrichedTasks returns every cached task joined with its feature and project.
	EnrichedTasks() []enrich.EnrichedTask

	// MyTasks returns the session user's enriched tasks, sorted with the
	// earliest start first.
	MyTasks() []enrich.EnrichedTask

	IsLoading() bool
	Err() models.FieldErrors
}
