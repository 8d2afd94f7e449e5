package primary

import "context"

// ActivityService defines the primary port for the local mutation history.
type ActivityService interface {
	// ListActivity retrieves entries matching the given filters.
	ListActivity(ctx context.Context, filters ActivityFilters) ([]*ActivityEntry, error)

	// PruneActivity deletes entries older than the specified number of days.
	PruneActivity(ctx context.Context, olderThanDays int) (int, error)
}

// ActivityEntry represents a recorded mutation at the port boundary.
type ActivityEntry struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   int
	Action     string // 'create', 'update', 'delete'
	Detail     string
}

// ActivityFilters contains filter options for listing activity.
type ActivityFilters struct {
	EntityType string
	EntityID   int
	Action     string
	Limit      int
}
