// Package app wires the entity stores, derived views and backend ports into
// the services the CLI drives.
package app

import (
	"cmp"
	"errors"
	"slices"

	"github.com/example/sprintdesk/internal/core/crossref"
	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/core/store"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// Store names, also used as RefreshReport failure keys.
const (
	StoreProjects = "projects"
	StoreSprints  = "sprints"
	StoreFeatures = "features"
	StoreTasks    = "tasks"
	StoreUsers    = "users"
)

// Cache is the normalized client-side state: one store per entity type plus
// the views derived from them.
type Cache struct {
	Projects *store.Store[models.Project]
	Sprints  *store.Store[models.Sprint]
	Features *store.Store[models.Feature]
	Tasks    *store.Store[models.Task]
	Users    *store.Store[models.User]

	Index  *crossref.Index
	Enrich *enrich.Engine
}

// NewCache creates an empty cache. Options configure the enrichment engine.
func NewCache(opts ...enrich.Option) *Cache {
	c := &Cache{
		Projects: store.New[models.Project](StoreProjects),
		Sprints:  store.New[models.Sprint](StoreSprints),
		Features: store.New[models.Feature](StoreFeatures),
		Tasks:    store.New[models.Task](StoreTasks),
		Users:    store.New[models.User](StoreUsers),
	}
	c.Index = crossref.NewIndex(c.Projects, c.Sprints, c.Features, c.Tasks)
	c.Enrich = enrich.NewEngine(c.Projects, c.Features, c.Tasks, opts...)
	return c
}

// Errors returns the error slot of every store that has one set.
func (c *Cache) Errors() map[string]models.FieldErrors {
	out := map[string]models.FieldErrors{}
	add := func(name string, fe models.FieldErrors) {
		if len(fe) > 0 {
			out[name] = fe
		}
	}
	add(StoreProjects, c.Projects.Err())
	add(StoreSprints, c.Sprints.Err())
	add(StoreFeatures, c.Features.Err())
	add(StoreTasks, c.Tasks.Err())
	add(StoreUsers, c.Users.Err())
	return out
}

// Export copies every store into a snapshot, each list ordered by ID.
func (c *Cache) Export() *secondary.Snapshot {
	return &secondary.Snapshot{
		Projects: sortedByID(c.Projects.All()),
		Sprints:  sortedByID(c.Sprints.All()),
		Features: sortedByID(c.Features.All()),
		Tasks:    sortedByID(c.Tasks.All()),
		Users:    sortedByID(c.Users.All()),
	}
}

// Import merges a snapshot into the stores. Records already cached are
// overwritten by the snapshot copy.
func (c *Cache) Import(snap *secondary.Snapshot) error {
	var errs []error
	if err := c.Projects.LoadMany(snap.Projects); err != nil {
		errs = append(errs, err)
	}
	if err := c.Sprints.LoadMany(snap.Sprints); err != nil {
		errs = append(errs, err)
	}
	if err := c.Features.LoadMany(snap.Features); err != nil {
		errs = append(errs, err)
	}
	if err := c.Tasks.LoadMany(snap.Tasks); err != nil {
		errs = append(errs, err)
	}
	if err := c.Users.LoadMany(snap.Users); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func sortedByID[T store.Record](records []T) []T {
	slices.SortFunc(records, func(a, b T) int { return cmp.Compare(a.EntityID(), b.EntityID()) })
	return records
}
