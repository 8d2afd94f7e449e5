package crossref

import (
	"slices"
	"sync"

	"github.com/example/sprintdesk/internal/models"
)

// Source is a versioned, read-only view of one entity store.
// *store.Store satisfies it.
type Source[T any] interface {
	Version() uint64
	Snapshot() (map[int]T, uint64)
}

// memo holds the results of one lookup kind for a single store version.
type memo[V any] struct {
	version uint64
	valid   bool
	entries map[int][]V
}

// lookup returns the cached slice for key if src has not changed since it was
// computed. On a miss the store is snapshotted once and the result is stored
// under the snapshot's version; a version change drops every entry of this
// kind.
func lookup[T, V any](mu *sync.Mutex, m *memo[V], src Source[T], key int, compute func(map[int]T) []V) []V {
	version := src.Version()

	mu.Lock()
	defer mu.Unlock()
	if m.valid && m.version == version {
		if hit, ok := m.entries[key]; ok {
			return slices.Clone(hit)
		}
	}

	records, snapVersion := src.Snapshot()
	if !m.valid || m.version != snapVersion {
		m.version = snapVersion
		m.valid = true
		m.entries = make(map[int][]V)
	}
	result := compute(records)
	m.entries[key] = result
	return slices.Clone(result)
}

// Index memoizes cross-reference lookups over the entity stores.
type Index struct {
	features Source[models.Feature]
	sprints  Source[models.Sprint]
	tasks    Source[models.Task]
	projects Source[models.Project]

	mu        sync.Mutex
	bySprint  memo[models.Feature]
	parking   memo[models.Feature]
	byProject memo[models.Feature]
	sprintsOf memo[models.Sprint]
	tasksOf   memo[models.Task]
	owned     memo[models.Project]
	member    memo[models.Project]
}

// NewIndex creates an index over the given stores.
func NewIndex(
	projects Source[models.Project],
	sprints Source[models.Sprint],
	features Source[models.Feature],
	tasks Source[models.Task],
) *Index {
	return &Index{
		features: features,
		sprints:  sprints,
		tasks:    tasks,
		projects: projects,
	}
}

// FeaturesBySprint returns the features assigned to sprintID.
func (ix *Index) FeaturesBySprint(sprintID int) []models.Feature {
	return lookup(&ix.mu, &ix.bySprint, ix.features, sprintID, func(records map[int]models.Feature) []models.Feature {
		return FeaturesBySprint(records, sprintID)
	})
}

// ParkingLot returns the unassigned features of projectID.
func (ix *Index) ParkingLot(projectID int) []models.Feature {
	return lookup(&ix.mu, &ix.parking, ix.features, projectID, func(records map[int]models.Feature) []models.Feature {
		return ParkingLot(records, projectID)
	})
}

// FeaturesByProject returns every feature of projectID.
func (ix *Index) FeaturesByProject(projectID int) []models.Feature {
	return lookup(&ix.mu, &ix.byProject, ix.features, projectID, func(records map[int]models.Feature) []models.Feature {
		return FeaturesByProject(records, projectID)
	})
}

// SprintsByProject returns the sprints of projectID.
func (ix *Index) SprintsByProject(projectID int) []models.Sprint {
	return lookup(&ix.mu, &ix.sprintsOf, ix.sprints, projectID, func(records map[int]models.Sprint) []models.Sprint {
		return SprintsByProject(records, projectID)
	})
}

// TasksByFeature returns the tasks of featureID.
func (ix *Index) TasksByFeature(featureID int) []models.Task {
	return lookup(&ix.mu, &ix.tasksOf, ix.tasks, featureID, func(records map[int]models.Task) []models.Task {
		return TasksByFeature(records, featureID)
	})
}

// OwnedProjects returns the projects owned by userID.
func (ix *Index) OwnedProjects(userID int) []models.Project {
	return lookup(&ix.mu, &ix.owned, ix.projects, userID, func(records map[int]models.Project) []models.Project {
		return OwnedProjects(records, userID)
	})
}

// MemberProjects returns the projects userID is a non-owner member of.
func (ix *Index) MemberProjects(userID int) []models.Project {
	return lookup(&ix.mu, &ix.member, ix.projects, userID, func(records map[int]models.Project) []models.Project {
		return MemberProjects(records, userID)
	})
}
