// Package project contains the pure business logic for project operations.
// Guards are pure functions that evaluate preconditions without side effects.
package project

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/example/sprintdesk/internal/models"
)

// Form limits enforced before a project is sent to the backend.
const (
	NameMaxLen        = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 300
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Fields  models.FieldErrors // set by validation guards
}

// Error converts the guard result to an error if not allowed.
// Field-level failures become a *models.ValidationError.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if len(r.Fields) > 0 {
		return &models.ValidationError{Fields: r.Fields}
	}
	return fmt.Errorf("%s", r.Reason)
}

// OwnershipContext provides context for owner-only guards.
type OwnershipContext struct {
	ProjectID     int
	OwnerID       int
	UserID        int
	Authenticated bool
}

// InputContext provides context for create/update validation.
type InputContext struct {
	Input models.ProjectInput
	Now   time.Time
}

func ownerOnly(ctx OwnershipContext, action string) GuardResult {
	// Rule 1: Someone must be logged in
	if !ctx.Authenticated {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("must be logged in to %s project %d", action, ctx.ProjectID),
		}
	}

	// Rule 2: Only the owner
	if ctx.UserID != ctx.OwnerID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only the owner can %s project %d", action, ctx.ProjectID),
		}
	}

	return GuardResult{Allowed: true}
}

// CanDeleteProject evaluates whether the session user may delete a project.
func CanDeleteProject(ctx OwnershipContext) GuardResult {
	return ownerOnly(ctx, "delete")
}

// CanUpdateProject evaluates whether the session user may edit a project.
func CanUpdateProject(ctx OwnershipContext) GuardResult {
	return ownerOnly(ctx, "update")
}

// CanEditMembers evaluates whether the session user may change membership.
func CanEditMembers(ctx OwnershipContext) GuardResult {
	return ownerOnly(ctx, "edit members of")
}

// ValidateInput evaluates a project form.
// Rules:
// - Name is required and at most 100 characters
// - Description is between 10 and 300 characters
// - Due date is required and not before today
func ValidateInput(ctx InputContext) GuardResult {
	fields := models.FieldErrors{}

	name := strings.TrimSpace(ctx.Input.Name)
	if name == "" {
		fields["name"] = "Name is required"
	} else if utf8.RuneCountInString(name) > NameMaxLen {
		fields["name"] = fmt.Sprintf("Name must be between 1 and %d characters", NameMaxLen)
	}

	desc := strings.TrimSpace(ctx.Input.Description)
	if n := utf8.RuneCountInString(desc); n < DescriptionMinLen || n > DescriptionMaxLen {
		fields["description"] = fmt.Sprintf("Description must be between %d and %d characters", DescriptionMinLen, DescriptionMaxLen)
	}

	if ctx.Input.DueDate.IsZero() {
		fields["due_date"] = "Due date is required"
	} else if dayOf(ctx.Input.DueDate.Time).Before(dayOf(ctx.Now)) {
		fields["due_date"] = "Due date must be in the future"
	}

	if len(fields) > 0 {
		return GuardResult{Allowed: false, Reason: "invalid project", Fields: fields}
	}
	return GuardResult{Allowed: true}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
