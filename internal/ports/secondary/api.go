// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/sprintdesk/internal/models"
)

// ProjectAPI defines the secondary port for the backend's project endpoints.
type ProjectAPI interface {
	// ListProjects retrieves every project visible to the session user.
	ListProjects(ctx context.Context) ([]models.Project, error)

	// GetProject retrieves a project by its ID.
	GetProject(ctx context.Context, id int) (*models.Project, error)

	// CreateProject creates a project owned by the session user.
	CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error)

	// UpdateProject replaces the editable fields of a project.
	UpdateProject(ctx context.Context, id int, input models.ProjectInput) (*models.Project, error)

	// DeleteProject removes a project.
	DeleteProject(ctx context.Context, id int) error
}

// SprintAPI defines the secondary port for the backend's sprint endpoints.
// Sprints are only addressable under their project.
type SprintAPI interface {
	ListSprints(ctx context.Context, projectID int) ([]models.Sprint, error)
	GetSprint(ctx context.Context, projectID, sprintID int) (*models.Sprint, error)
	CreateSprint(ctx context.Context, projectID int, input models.SprintInput) (*models.Sprint, error)
	UpdateSprint(ctx context.Context, projectID, sprintID int, input models.SprintInput) (*models.Sprint, error)
	DeleteSprint(ctx context.Context, projectID, sprintID int) error
}

// FeatureAPI defines the secondary port for the backend's feature endpoints.
type FeatureAPI interface {
	ListFeatures(ctx context.Context, projectID int) ([]models.Feature, error)
	GetFeature(ctx context.Context, projectID, featureID int) (*models.Feature, error)
	CreateFeature(ctx context.Context, projectID int, input models.FeatureInput) (*models.Feature, error)
	UpdateFeature(ctx context.Context, projectID, featureID int, input models.FeatureInput) (*models.Feature, error)

	// MoveFeature sets or clears the feature's sprint.
	MoveFeature(ctx context.Context, projectID, featureID int, move models.FeatureMove) (*models.Feature, error)

	DeleteFeature(ctx context.Context, projectID, featureID int) error
}

// TaskAPI defines the secondary port for the backend's task endpoints.
type TaskAPI interface {
	// ListTasks retrieves the tasks assigned to the session user.
	ListTasks(ctx context.Context) ([]models.Task, error)

	// ListFeatureTasks retrieves every task of a feature.
	ListFeatureTasks(ctx context.Context, projectID, featureID int) ([]models.Task, error)

	CreateTask(ctx context.Context, projectID, featureID int, input models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID int, input models.TaskInput) (*models.Task, error)

	// ToggleTask flips a task between Completed and Not Started.
	ToggleTask(ctx context.Context, taskID int) (*models.Task, error)

	DeleteTask(ctx context.Context, taskID int) error
}

// UserAPI defines the secondary port for the backend's user endpoints.
type UserAPI interface {
	// ListUsers retrieves the user directory.
	ListUsers(ctx context.Context) ([]models.User, error)

	// ListProjectUsers retrieves the members of a project.
	ListProjectUsers(ctx context.Context, projectID int) ([]models.User, error)
}

// AuthAPI defines the secondary port for the backend's session endpoints.
type AuthAPI interface {
	// Restore returns the user of the current backend session, or nil when
	// there is none.
	Restore(ctx context.Context) (*models.User, error)

	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Signup(ctx context.Context, signup models.Signup) (*models.User, error)
	Logout(ctx context.Context) error
}

// Backend bundles every API port served by one backend.
type Backend interface {
	ProjectAPI
	SprintAPI
	FeatureAPI
	TaskAPI
	UserAPI
	AuthAPI
}
