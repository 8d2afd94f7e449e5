// Package sprint contains the pure business logic for sprint operations.
package sprint

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

// ValidateInput evaluates a sprint form.
// Rules:
// - Name is required
// - Start date must not be after end date (when both are set)
func ValidateInput(input models.SprintInput) GuardResult {
	fields := models.FieldErrors{}

	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	if input.StartDate.Valid() && input.EndDate.Valid() && input.StartDate.After(input.EndDate.Time) {
		fields["end_date"] = "End date must be on or after the start date"
	}

	if len(fields) > 0 {
		return GuardResult{Allowed: false, Reason: "invalid sprint", Fields: fields}
	}
	return GuardResult{Allowed: true}
}
