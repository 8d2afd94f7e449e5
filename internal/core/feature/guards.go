// Package feature contains the pure business logic for feature operations.
// Guards are pure functions that evaluate preconditions without side effects.
package feature

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

// SprintPlacementContext provides context for placing a feature in a sprint.
type SprintPlacementContext struct {
	FeatureProjectID int
	SprintID         *int // nil targets the parking lot
	SprintExists     bool
	SprintProjectID  int
}

// CanPlaceInSprint evaluates whether a feature may be assigned to a sprint.
// Rules:
// - The parking lot (nil sprint) is always allowed
// - Sprint must be known
// - Sprint must belong to the feature's project
func CanPlaceInSprint(ctx SprintPlacementContext) GuardResult {
	if ctx.SprintID == nil {
		return GuardResult{Allowed: true}
	}

	if !ctx.SprintExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("sprint %d not found", *ctx.SprintID),
		}
	}

	if ctx.SprintProjectID != ctx.FeatureProjectID {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("sprint %d belongs to project %d, not project %d",
				*ctx.SprintID, ctx.SprintProjectID, ctx.FeatureProjectID),
		}
	}

	return GuardResult{Allowed: true}
}

// ValidateInput evaluates a feature form.
// Rules:
// - Name is required
// - Status, when given, must be a known status
// - Priority must be Low, Medium or High
func ValidateInput(input models.FeatureInput) GuardResult {
	fields := models.FieldErrors{}

	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	if input.Status != "" {
		if _, err := models.ParseTaskStatus(string(input.Status)); err != nil {
			fields["status"] = "Status must be one of: Not Started, In Progress, Completed"
		}
	}
	if input.Priority < models.PriorityLow || input.Priority > models.PriorityHigh {
		fields["priority"] = "Priority must be Low, Medium or High"
	}

	if len(fields) > 0 {
		return GuardResult{Allowed: false, Reason: "invalid feature", Fields: fields}
	}
	return GuardResult{Allowed: true}
}
