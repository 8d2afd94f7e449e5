package primary

import (
	"context"
	"time"

	"github.com/example/sprintdesk/internal/models"
)

// RefreshService defines the primary port for whole-cache loads.
type RefreshService interface {
	// RefreshAll loads projects, tasks and users concurrently, then the
	// sprints and features of every project. A failing branch never
	// aborts its siblings.
	RefreshAll(ctx context.Context) *RefreshReport

	// SaveSnapshot persists the cache for offline use.
	SaveSnapshot(ctx context.Context) error

	// RestoreSnapshot loads the last saved cache without network access.
	RestoreSnapshot(ctx context.Context) (*RefreshReport, error)
}

// RefreshReport summarizes a refresh or restore.
type RefreshReport struct {
	Projects int
	Sprints  int
	Features int
	Tasks    int
	Users    int

	// Failures holds the error slot of each entity type that failed,
	// keyed by store name.
	Failures map[string]models.FieldErrors

	StartedAt  time.Time
	FinishedAt time.Time
}

// OK reports whether every branch succeeded.
func (r *RefreshReport) OK() bool {
	return len(r.Failures) == 0
}
