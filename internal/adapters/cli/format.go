// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/models"
)

const rule = "────────────────────────────────────────────────────────────────"

// colorizeStatus formats a task or feature status with semantic color.
func colorizeStatus(status models.TaskStatus) string {
	label := string(status)
	if label == "" {
		label = string(models.TaskStatusNotStarted)
	}
	parsed, err := models.ParseTaskStatus(label)
	if err != nil {
		return label
	}
	switch parsed {
	case models.TaskStatusInProgress:
		return color.New(color.FgHiBlue).Sprint(label)
	case models.TaskStatusCompleted:
		return color.New(color.FgHiGreen).Sprint(label)
	case models.TaskStatusOverdue:
		return color.New(color.FgRed).Sprint(label)
	default:
		return color.New(color.FgWhite).Sprint(label)
	}
}

// colorizePriority formats a priority label with semantic color.
func colorizePriority(p models.Priority) string {
	switch p.Label() {
	case "High":
		return color.New(color.FgRed).Sprint("High")
	case "Medium":
		return color.New(color.FgYellow).Sprint("Medium")
	default:
		return color.New(color.FgHiBlack).Sprint("Low")
	}
}

func overdueMarker(overdue bool) string {
	if !overdue {
		return ""
	}
	return color.New(color.FgRed, color.Bold).Sprint(" [overdue]")
}

// failure turns the error slot of a failed request into an error.
func failure(op string, fields models.FieldErrors) error {
	if len(fields) == 0 {
		fields = models.BaseError()
	}
	return fmt.Errorf("%s failed: %s", op, fields)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func dateRange(start, end models.Date, f enrich.Format) string {
	s, e := enrich.FormatDate(start, f), enrich.FormatDate(end, f)
	if s == "" && e == "" {
		return "no dates"
	}
	return dash(s) + " → " + dash(e)
}
