// Package models contains the entity types mirrored from the backend.
// Records are plain values; the cache owns them by ID.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TaskStatus is the canonical task status. The backend stores title-case
// literals; parsing is case-insensitive so "completed" and "Completed" match.
type TaskStatus string

// Task status constants
const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusOverdue    TaskStatus = "Overdue"
)

var taskStatuses = []TaskStatus{
	TaskStatusNotStarted,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusOverdue,
}

// ParseTaskStatus maps any casing or underscore variant onto the enum.
func ParseTaskStatus(s string) (TaskStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
	for _, st := range taskStatuses {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (valid: Not Started, In Progress, Completed)", s)
}

// IsCompleted reports whether the status is the completed state.
func (s TaskStatus) IsCompleted() bool {
	return s == TaskStatusCompleted
}

// UnmarshalJSON normalizes the literal. Unknown values are kept verbatim so a
// new backend status never fails a whole load.
func (s *TaskStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if parsed, err := ParseTaskStatus(raw); err == nil {
		*s = parsed
		return nil
	}
	*s = TaskStatus(raw)
	return nil
}

// Priority is the ordinal priority shared by tasks and features.
type Priority int

// Priority constants. This is the single ordinal-to-label table.
const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

// Label returns Low, Medium or High. Out-of-range ordinals clamp to the
// nearest end.
func (p Priority) Label() string {
	switch {
	case p <= PriorityLow:
		return "Low"
	case p == PriorityMedium:
		return "Medium"
	default:
		return "High"
	}
}

// ParsePriority accepts a label (any case) or an ordinal.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "0":
		return PriorityLow, nil
	case "medium", "1":
		return PriorityMedium, nil
	case "high", "2":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("invalid priority %q (valid: low, medium, high)", s)
}

// UnmarshalJSON accepts an ordinal, a numeric string or a label, since older
// forms posted "high"/"medium"/"low".
func (p *Priority) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = PriorityLow
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*p = Priority(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("priority must be a number or label: %w", err)
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Task represents a task entity as returned by the backend.
type Task struct {
	ID          int        `json:"id"`
	FeatureID   int        `json:"feature_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	AssignedTo  *int       `json:"assigned_to"`
	CreatedBy   int        `json:"created_by,omitempty"`
	StartDate   Date       `json:"start_date"`
	DueDate     Date       `json:"due_date"`
	Duration    string     `json:"duration,omitempty"`
	CreatedAt   Date       `json:"created_at"`
	UpdatedAt   Date       `json:"updated_at"`
}

// EntityID implements the store record contract.
func (t Task) EntityID() int { return t.ID }

// IsAssignedTo reports whether the task is assigned to userID.
func (t Task) IsAssignedTo(userID int) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

// TaskInput is the body for task create and update requests.
type TaskInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status,omitempty"`
	Priority    Priority   `json:"priority"`
	AssignedTo  *int       `json:"assigned_to"`
	StartDate   Date       `json:"start_date"`
	DueDate     Date       `json:"due_date"`
}

// InputFromTask copies the editable fields of t.
func InputFromTask(t Task) TaskInput {
	return TaskInput{
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  t.AssignedTo,
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
	}
}
