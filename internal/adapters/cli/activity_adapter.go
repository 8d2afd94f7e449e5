package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/example/sprintdesk/internal/ports/primary"
)

// ActivityAdapter prints and prunes the local mutation history.
type ActivityAdapter struct {
	service primary.ActivityService
	out     io.Writer
}

// NewActivityAdapter creates a new ActivityAdapter with the given service.
func NewActivityAdapter(service primary.ActivityService, out io.Writer) *ActivityAdapter {
	return &ActivityAdapter{service: service, out: out}
}

// History prints matching entries oldest first.
func (a *ActivityAdapter) History(ctx context.Context, filters primary.ActivityFilters) error {
	entries, err := a.service.ListActivity(ctx, filters)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity recorded.")
		return nil
	}

	fmt.Fprintf(a.out, "Found %d entries:\n\n", len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		a.printEntry(entries[i])
	}
	return nil
}

func (a *ActivityAdapter) printEntry(entry *primary.ActivityEntry) {
	fmt.Fprintf(a.out, "%s | %-8s | %s %-6s | %s/%d",
		formatTimestamp(entry.Timestamp),
		dash(entry.ActorID),
		actionIcon(entry.Action),
		entry.Action,
		entry.EntityType,
		entry.EntityID,
	)
	if entry.Detail != "" {
		fmt.Fprintf(a.out, " | %s", entry.Detail)
	}
	fmt.Fprintln(a.out)
}

// Prune deletes entries older than days.
func (a *ActivityAdapter) Prune(ctx context.Context, days int) error {
	count, err := a.service.PruneActivity(ctx, days)
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintf(a.out, "No activity older than %d days found.\n", days)
	} else {
		fmt.Fprintf(a.out, "✓ Pruned %d entries older than %d days\n", count, days)
	}
	return nil
}

func actionIcon(action string) string {
	switch action {
	case "create":
		return color.New(color.FgGreen).Sprint("+")
	case "update":
		return color.New(color.FgYellow).Sprint("~")
	case "delete":
		return color.New(color.FgRed).Sprint("-")
	default:
		return "?"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}
