package secondary

import "context"

// ActivityWriter defines the interface for recording confirmed mutations.
// Implementations extract the acting user from context.
type ActivityWriter interface {
	// LogCreate records a create for an entity.
	LogCreate(ctx context.Context, entityType string, entityID int) error

	// LogUpdate records an update for an entity. detail is a short
	// description of what changed and may be empty.
	LogUpdate(ctx context.Context, entityType string, entityID int, detail string) error

	// LogDelete records a delete for an entity.
	LogDelete(ctx context.Context, entityType string, entityID int) error
}

// ActivityRepository defines the secondary port for activity persistence.
type ActivityRepository interface {
	// Create persists a new activity entry.
	Create(ctx context.Context, record *ActivityRecord) error

	// List retrieves entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ActivityRecord represents an activity entry as stored in persistence.
type ActivityRecord struct {
	ID         string
	Timestamp  string
	ActorID    string // Empty string means null
	EntityType string
	EntityID   int
	Action     string // 'create', 'update', 'delete'
	Detail     string // Empty string means null
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	EntityType string
	EntityID   int
	ActorID    string
	Action     string
	Limit      int
}
