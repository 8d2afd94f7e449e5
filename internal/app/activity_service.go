package app

import (
	"context"
	"fmt"

	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ActivityServiceImpl implements the ActivityService interface.
type ActivityServiceImpl struct {
	repo secondary.ActivityRepository
}

// NewActivityService creates a new ActivityService with injected dependencies.
func NewActivityService(repo secondary.ActivityRepository) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		repo: repo,
	}
}

// ListActivity retrieves entries matching the given filters, newest first.
func (s *ActivityServiceImpl) ListActivity(ctx context.Context, filters primary.ActivityFilters) ([]*primary.ActivityEntry, error) {
	records, err := s.repo.List(ctx, secondary.ActivityFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		Action:     filters.Action,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*primary.ActivityEntry, len(records))
	for i, r := range records {
		entries[i] = recordToActivityEntry(r)
	}
	return entries, nil
}

// PruneActivity deletes entries older than the specified number of days.
func (s *ActivityServiceImpl) PruneActivity(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 0 {
		return 0, fmt.Errorf("days must not be negative, got %d", olderThanDays)
	}
	return s.repo.PruneOlderThan(ctx, olderThanDays)
}

func recordToActivityEntry(r *secondary.ActivityRecord) *primary.ActivityEntry {
	return &primary.ActivityEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		ActorID:    r.ActorID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		Detail:     r.Detail,
	}
}

// Ensure ActivityServiceImpl implements the interface
var _ primary.ActivityService = (*ActivityServiceImpl)(nil)
