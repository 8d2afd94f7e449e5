package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// RefreshAdapter fills the cache before a command renders it, either from
// the backend or from the offline snapshot.
type RefreshAdapter struct {
	refresh primary.RefreshService
	session primary.SessionService
	out     io.Writer
}

// NewRefreshAdapter creates a new RefreshAdapter with the given services.
func NewRefreshAdapter(refresh primary.RefreshService, session primary.SessionService, out io.Writer) *RefreshAdapter {
	return &RefreshAdapter{
		refresh: refresh,
		session: session,
		out:     out,
	}
}

// Load populates the cache. Online loads resume the session and refresh every
// store, saving a snapshot only when every store loaded. Offline loads restore
// the last snapshot.
func (a *RefreshAdapter) Load(ctx context.Context, offline bool) (*primary.RefreshReport, error) {
	if offline {
		report, err := a.refresh.RestoreSnapshot(ctx)
		if errors.Is(err, secondary.ErrNoSnapshot) {
			return nil, fmt.Errorf("no offline snapshot yet\nHint: run 'sprintdesk refresh' while online")
		}
		return report, err
	}

	user, err := a.session.Resume(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("not logged in\nHint: run 'sprintdesk login' first")
	}

	report := a.refresh.RefreshAll(ctx)
	warn := color.New(color.FgYellow).Sprint("!")
	if report.OK() {
		if err := a.refresh.SaveSnapshot(ctx); err != nil {
			fmt.Fprintf(a.out, "%s %v\n", warn, err)
		}
	} else {
		fmt.Fprintf(a.out, "%s offline snapshot kept from the last complete refresh\n", warn)
	}
	a.printFailures(report)
	return report, nil
}

// Refresh loads everything and prints a summary.
func (a *RefreshAdapter) Refresh(ctx context.Context, offline bool) error {
	report, err := a.Load(ctx, offline)
	if err != nil {
		return err
	}

	source := "backend"
	if offline {
		source = "snapshot"
	}
	fmt.Fprintf(a.out, "✓ Loaded from %s: %d projects, %d sprints, %d features, %d tasks, %d users (%s)\n",
		source, report.Projects, report.Sprints, report.Features, report.Tasks, report.Users,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	if !report.OK() {
		return fmt.Errorf("%d entity types failed to load", len(report.Failures))
	}
	return nil
}

func (a *RefreshAdapter) printFailures(report *primary.RefreshReport) {
	names := make([]string, 0, len(report.Failures))
	for name := range report.Failures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.out, "%s %s: %s\n", color.New(color.FgRed).Sprint("✗"), name, report.Failures[name])
	}
}
