package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/sprintdesk/internal/ctxutil"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ActivityWriterAdapter implements secondary.ActivityWriter using ActivityRepository.
type ActivityWriterAdapter struct {
	repo secondary.ActivityRepository
}

// NewActivityWriterAdapter creates a new ActivityWriterAdapter.
func NewActivityWriterAdapter(repo secondary.ActivityRepository) *ActivityWriterAdapter {
	return &ActivityWriterAdapter{repo: repo}
}

// LogCreate records a create for an entity.
func (w *ActivityWriterAdapter) LogCreate(ctx context.Context, entityType string, entityID int) error {
	return w.write(ctx, entityType, entityID, "create", "")
}

// LogUpdate records an update for an entity.
func (w *ActivityWriterAdapter) LogUpdate(ctx context.Context, entityType string, entityID int, detail string) error {
	return w.write(ctx, entityType, entityID, "update", detail)
}

// LogDelete records a delete for an entity.
func (w *ActivityWriterAdapter) LogDelete(ctx context.Context, entityType string, entityID int) error {
	return w.write(ctx, entityType, entityID, "delete", "")
}

func (w *ActivityWriterAdapter) write(ctx context.Context, entityType string, entityID int, action, detail string) error {
	return w.repo.Create(ctx, &secondary.ActivityRecord{
		ID:         uuid.NewString(),
		ActorID:    ctxutil.ActorFromContext(ctx),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
	})
}

// Ensure ActivityWriterAdapter implements the interface
var _ secondary.ActivityWriter = (*ActivityWriterAdapter)(nil)
