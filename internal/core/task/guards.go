// Package task contains the pure business logic for task operations.
// Guards are pure functions that evaluate preconditions without side effects.
package task

import (
	"fmt"
	"strings"

	"github.com/example/sprintdesk/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Fields  models.FieldErrors
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if len(r.Fields) > 0 {
		return &models.ValidationError{Fields: r.Fields}
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateTaskContext provides context for task creation guards.
type CreateTaskContext struct {
	ProjectID        int
	FeatureID        int
	FeatureExists    bool
	FeatureProjectID int // project of the cached feature, checked only if FeatureExists
}

// CanCreateTask evaluates whether a task can be created under a feature.
// Rules:
// - Feature must be cached
// - Feature must belong to the given project
func CanCreateTask(ctx CreateTaskContext) GuardResult {
	// Rule 1: Feature must exist
	if !ctx.FeatureExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("feature %d not found", ctx.FeatureID),
		}
	}

	// Rule 2: Feature must live in the project the request targets
	if ctx.FeatureProjectID != ctx.ProjectID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("feature %d does not belong to project %d", ctx.FeatureID, ctx.ProjectID),
		}
	}

	return GuardResult{Allowed: true}
}

// ValidateInput evaluates a task form.
// Rules:
// - Name and description are required
// - Priority must be Low, Medium or High
// - Start date must not be after due date (when both are set)
func ValidateInput(input models.TaskInput) GuardResult {
	fields := models.FieldErrors{}

	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "Description is required"
	}
	if input.Priority < models.PriorityLow || input.Priority > models.PriorityHigh {
		fields["priority"] = "Priority must be Low, Medium or High"
	}
	if input.StartDate.Valid() && input.DueDate.Valid() && input.StartDate.After(input.DueDate.Time) {
		fields["due_date"] = "Due date must be on or after the start date"
	}

	if len(fields) > 0 {
		return GuardResult{Allowed: false, Reason: "invalid task", Fields: fields}
	}
	return GuardResult{Allowed: true}
}

// ToggledStatus returns the status a completion toggle moves a task to:
// Completed becomes Not Started, anything else becomes Completed.
func ToggledStatus(current models.TaskStatus) models.TaskStatus {
	if current.IsCompleted() {
		return models.TaskStatusNotStarted
	}
	return models.TaskStatusCompleted
}
