package secondary

import (
	"context"
	"errors"
	"time"

	"github.com/example/sprintdesk/internal/models"
)

// ErrNoSnapshot is returned by LoadSnapshot when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no cache snapshot saved")

// SnapshotRepository defines the secondary port for the offline cache copy.
type SnapshotRepository interface {
	// SaveSnapshot replaces the stored snapshot.
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error

	// LoadSnapshot retrieves the stored snapshot or ErrNoSnapshot.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is a point-in-time copy of every entity store.
type Snapshot struct {
	Projects    []models.Project
	Sprints     []models.Sprint
	Features    []models.Feature
	Tasks       []models.Task
	Users       []models.User
	SessionUser *models.User // nil when nobody was logged in
	BaseURL     string
	SavedAt     time.Time
}
