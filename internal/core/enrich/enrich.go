// Package enrich joins tasks with their feature and project into UI-ready
// views. EnrichTask is a pure function; Engine memoizes the full enriched
// list on the versions of the three stores it reads.
package enrich

import (
	"fmt"
	"time"

	"github.com/example/sprintdesk/internal/models"
)

// DefaultDateLayout renders a calendar date without a time component.
const DefaultDateLayout = "Jan 2, 2006"

// FeatureRef is the lightweight feature context of an enriched task.
type FeatureRef struct {
	ID     int
	Name   string
	Status models.TaskStatus
}

// ProjectRef is the lightweight project context of an enriched task.
type ProjectRef struct {
	ID   int
	Name string
}

// Context holds the joined parents. Either pointer is nil when the join
// cannot be made from the cache.
type Context struct {
	Feature *FeatureRef
	Project *ProjectRef
}

// Display holds denormalized presentation fields.
type Display struct {
	DueDate     string
	StartDate   string
	Priority    string
	StatusLabel string
	Duration    string
	IsOverdue   bool
}

// EnrichedTask is a task plus its joined context and display fields.
type EnrichedTask struct {
	models.Task
	Context Context
	Display Display
}

// Format controls how dates are rendered.
type Format struct {
	DateLayout string
	Location   *time.Location
}

func (f Format) layout() string {
	if f.DateLayout == "" {
		return DefaultDateLayout
	}
	return f.DateLayout
}

func (f Format) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// EnrichTask joins task → feature → project. Missing parents degrade to nil
// context fields.
func EnrichTask(task models.Task, features map[int]models.Feature, projects map[int]models.Project, now time.Time, format Format) EnrichedTask {
	out := EnrichedTask{Task: task}

	if feature, ok := features[task.FeatureID]; ok {
		out.Context.Feature = &FeatureRef{ID: feature.ID, Name: feature.Name, Status: feature.Status}
		if project, ok := projects[feature.ProjectID]; ok {
			out.Context.Project = &ProjectRef{ID: project.ID, Name: project.Name}
		}
	}

	out.Display = Display{
		DueDate:     FormatDate(task.DueDate, format),
		StartDate:   FormatDate(task.StartDate, format),
		Priority:    task.Priority.Label(),
		StatusLabel: string(task.Status),
		Duration:    Duration(task.StartDate, task.DueDate),
		IsOverdue:   IsOverdue(task, now.In(format.location())),
	}
	return out
}

// IsOverdue reports whether the task is due strictly before now and is not
// completed. A zoneless due date is read in now's location.
func IsOverdue(task models.Task, now time.Time) bool {
	if !task.DueDate.Valid() {
		return false
	}
	return task.DueDate.At(now.Location()).Before(now) && !task.Status.IsCompleted()
}

// FormatDate renders the calendar date of d, or "" for a null date.
func FormatDate(d models.Date, format Format) string {
	if !d.Valid() {
		return ""
	}
	return d.At(format.location()).Format(format.layout())
}

// Duration renders the span between start and due: spans of 12 hours or more
// round to whole days, shorter spans are shown in hours.
func Duration(start, due models.Date) string {
	if !start.Valid() || !due.Valid() {
		return ""
	}
	hours := due.Sub(start.Time).Hours()
	if hours >= 12 {
		days := int((hours + 12) / 24)
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	if hours < 0 {
		hours = 0
	}
	return fmt.Sprintf("%d hours", int(hours))
}
