// Package crossref answers parent/child lookups across entity stores.
//
// Lookups are derived, never stored: each one is a pure filter over the
// canonical store contents. Index memoizes them keyed by store version and
// filter parameters, so a lookup is recomputed only after the underlying
// store changes.
package crossref

import (
	"cmp"
	"slices"
	"time"

	"github.com/example/sprintdesk/internal/models"
)

// FeaturesBySprint returns the features assigned to sprintID.
func FeaturesBySprint(features map[int]models.Feature, sprintID int) []models.Feature {
	out := []models.Feature{}
	for _, f := range features {
		if f.InSprint(sprintID) {
			out = append(out, f)
		}
	}
	sortFeatures(out)
	return out
}

// ParkingLot returns the features of projectID that have no sprint.
func ParkingLot(features map[int]models.Feature, projectID int) []models.Feature {
	out := []models.Feature{}
	for _, f := range features {
		if f.ProjectID == projectID && f.InParkingLot() {
			out = append(out, f)
		}
	}
	sortFeatures(out)
	return out
}

// FeaturesByProject returns every feature of projectID, sprint or not.
func FeaturesByProject(features map[int]models.Feature, projectID int) []models.Feature {
	out := []models.Feature{}
	for _, f := range features {
		if f.ProjectID == projectID {
			out = append(out, f)
		}
	}
	sortFeatures(out)
	return out
}

// SprintsByProject returns the sprints of projectID ordered by start date.
func SprintsByProject(sprints map[int]models.Sprint, projectID int) []models.Sprint {
	out := []models.Sprint{}
	for _, s := range sprints {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b models.Sprint) int {
		if c := a.StartDate.Compare(b.StartDate.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// TasksByFeature returns the tasks of featureID ordered by start date.
func TasksByFeature(tasks map[int]models.Task, featureID int) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.FeatureID == featureID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Task) int {
		if c := a.StartDate.Compare(b.StartDate.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// OwnedProjects returns the projects whose owner is userID.
func OwnedProjects(projects map[int]models.Project, userID int) []models.Project {
	return filterProjects(projects, func(p models.Project) bool {
		return p.OwnerID == userID
	})
}

// MemberProjects returns the projects userID belongs to without owning.
func MemberProjects(projects map[int]models.Project, userID int) []models.Project {
	return filterProjects(projects, func(p models.Project) bool {
		return p.HasMember(userID) && p.OwnerID != userID
	})
}

// ProjectsDueWithin returns the projects due between now and now+days.
func ProjectsDueWithin(projects map[int]models.Project, days int, now time.Time) []models.Project {
	limit := now.AddDate(0, 0, days)
	return filterProjects(projects, func(p models.Project) bool {
		if !p.DueDate.Valid() {
			return false
		}
		due := p.DueDate.At(now.Location())
		return !due.Before(now) && !due.After(limit)
	})
}

func filterProjects(projects map[int]models.Project, keep func(models.Project) bool) []models.Project {
	out := []models.Project{}
	for _, p := range projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Project) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// sortFeatures orders by board position, then ID.
func sortFeatures(fs []models.Feature) {
	slices.SortFunc(fs, func(a, b models.Feature) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
