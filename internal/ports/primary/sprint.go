package primary

import (
	"context"

	"github.com/example/sprintdesk/internal/models"
)

// SprintService defines the primary port for sprint operations.
type SprintService interface {
	// LoadSprints fetches the sprints of a project.
	LoadSprints(ctx context.Context, projectID int) []models.Sprint

	GetSprint(ctx context.Context, projectID, sprintID int) *models.Sprint
	CreateSprint(ctx context.Context, projectID int, input models.SprintInput) (*models.Sprint, error)

	// UpdateSprint updates a sprint, then reloads every sprint of its project.
	UpdateSprint(ctx context.Context, projectID, sprintID int, input models.SprintInput) (*models.Sprint, error)

	DeleteSprint(ctx context.Context, projectID, sprintID int) bool

	Sprint(id int) (models.Sprint, bool)
	SprintsByProject(projectID int) []models.Sprint

	IsLoading() bool
	Err() models.FieldErrors
}
