// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI drives.
package primary

import (
	"context"
	"time"

	"github.com/example/sprintdesk/internal/models"
)

// ProjectService defines the primary port for project operations.
//
// Mutations return the confirmed record, or nil when the backend refused
// the request; the refusal is then readable through Err. A non-nil Go error
// means the request was never sent (validation or ownership).
type ProjectService interface {
	// LoadProjects fetches every project and merges it into the cache.
	LoadProjects(ctx context.Context) []models.Project

	// GetProject shows the cached project immediately and refreshes it from
	// the backend. The returned record is the freshest one available.
	GetProject(ctx context.Context, id int) *models.Project

	CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id int, input models.ProjectInput) (*models.Project, error)

	// DeleteProject removes the project after the backend confirms.
	DeleteProject(ctx context.Context, id int) (bool, error)

	// LoadProjectUsers fetches the members of a project into the user cache.
	LoadProjectUsers(ctx context.Context, projectID int) []models.User

	// Project returns a cached project.
	Project(id int) (models.Project, bool)

	// Projects returns every cached project ordered by ID.
	Projects() []models.Project

	// OwnedProjects returns projects owned by the session user.
	OwnedProjects() []models.Project

	// MemberProjects returns projects the session user belongs to but does not own.
	MemberProjects() []models.Project

	// ProjectsDueWithin returns projects due within the next days.
	ProjectsDueWithin(days int, now time.Time) []models.Project

	// Focused returns the project currently in focus.
	Focused() (models.Project, bool)

	IsLoading() bool
	Err() models.FieldErrors
}
