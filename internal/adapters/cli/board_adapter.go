package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
)

// BoardAdapter renders a project's sprints and parking lot and drives sprint
// and feature mutations.
type BoardAdapter struct {
	sprints  primary.SprintService
	features primary.FeatureService
	tasks    primary.TaskService
	dates    enrich.Format
	out      io.Writer
}

// NewBoardAdapter creates a new BoardAdapter with the given services.
func NewBoardAdapter(sprints primary.SprintService, features primary.FeatureService, tasks primary.TaskService, dates enrich.Format, out io.Writer) *BoardAdapter {
	return &BoardAdapter{
		sprints:  sprints,
		features: features,
		tasks:    tasks,
		dates:    dates,
		out:      out,
	}
}

// Board prints every sprint of a project with its features, then the
// parking lot.
func (a *BoardAdapter) Board(projectID int) error {
	sprints := a.sprints.SprintsByProject(projectID)
	parked := a.features.ParkingLot(projectID)
	if len(sprints) == 0 && len(parked) == 0 {
		fmt.Fprintf(a.out, "Project %d has no sprints or features\n", projectID)
		return nil
	}

	for _, s := range sprints {
		fmt.Fprintf(a.out, "\n%s %s  %s\n",
			color.New(color.FgCyan, color.Bold).Sprintf("Sprint %d:", s.ID),
			s.Name,
			color.New(color.FgHiBlack).Sprint(dateRange(s.StartDate, s.EndDate, a.dates)))
		fmt.Fprintln(a.out, rule)
		a.printFeatures(a.features.FeaturesBySprint(s.ID))
	}

	fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgYellow, color.Bold).Sprint("Parking lot"))
	fmt.Fprintln(a.out, rule)
	a.printFeatures(parked)
	fmt.Fprintln(a.out)

	return nil
}

func (a *BoardAdapter) printFeatures(features []models.Feature) {
	if len(features) == 0 {
		fmt.Fprintln(a.out, "  (empty)")
		return
	}
	for _, f := range features {
		fmt.Fprintf(a.out, "  %-6d %-22s %-16s %s (%d tasks)\n",
			f.ID, colorizeStatus(f.Status), colorizePriority(f.Priority), f.Name, len(a.tasks.TasksByFeature(f.ID)))
	}
}

// CreateSprint creates a sprint.
func (a *BoardAdapter) CreateSprint(ctx context.Context, projectID int, input models.SprintInput) error {
	sprint, err := a.sprints.CreateSprint(ctx, projectID, input)
	if err != nil {
		return err
	}
	if sprint == nil {
		return failure("create sprint", a.sprints.Err())
	}

	fmt.Fprintf(a.out, "✓ Created sprint %d: %s\n", sprint.ID, sprint.Name)
	return nil
}

// UpdateSprint replaces a sprint's name and dates.
func (a *BoardAdapter) UpdateSprint(ctx context.Context, projectID, sprintID int, input models.SprintInput) error {
	sprint, err := a.sprints.UpdateSprint(ctx, projectID, sprintID, input)
	if err != nil {
		return err
	}
	if sprint == nil {
		return failure(fmt.Sprintf("update sprint %d", sprintID), a.sprints.Err())
	}

	fmt.Fprintf(a.out, "✓ Sprint %d updated\n", sprintID)
	return nil
}

// DeleteSprint deletes a sprint.
func (a *BoardAdapter) DeleteSprint(ctx context.Context, projectID, sprintID int) error {
	if !a.sprints.DeleteSprint(ctx, projectID, sprintID) {
		return failure(fmt.Sprintf("delete sprint %d", sprintID), a.sprints.Err())
	}

	fmt.Fprintf(a.out, "✓ Deleted sprint %d\n", sprintID)
	return nil
}

// CreateFeature creates a feature.
func (a *BoardAdapter) CreateFeature(ctx context.Context, projectID int, input models.FeatureInput) error {
	feature, err := a.features.CreateFeature(ctx, projectID, input)
	if err != nil {
		return err
	}
	if feature == nil {
		return failure("create feature", a.features.Err())
	}

	fmt.Fprintf(a.out, "✓ Created feature %d: %s\n", feature.ID, feature.Name)
	return nil
}

// MoveFeature moves a feature into a sprint.
func (a *BoardAdapter) MoveFeature(ctx context.Context, projectID, featureID, sprintID int) error {
	feature, err := a.features.MoveFeature(ctx, projectID, featureID, sprintID)
	if err != nil {
		return err
	}
	if feature == nil {
		return failure(fmt.Sprintf("move feature %d", featureID), a.features.Err())
	}

	fmt.Fprintf(a.out, "✓ Moved feature %d to sprint %d\n", featureID, sprintID)
	return nil
}

// ParkFeature moves a feature to the parking lot.
func (a *BoardAdapter) ParkFeature(ctx context.Context, projectID, featureID int) error {
	feature, err := a.features.ParkFeature(ctx, projectID, featureID)
	if err != nil {
		return err
	}
	if feature == nil {
		return failure(fmt.Sprintf("park feature %d", featureID), a.features.Err())
	}

	fmt.Fprintf(a.out, "✓ Moved feature %d to the parking lot\n", featureID)
	return nil
}

// DeleteFeature deletes a feature.
func (a *BoardAdapter) DeleteFeature(ctx context.Context, projectID, featureID int) error {
	if !a.features.DeleteFeature(ctx, projectID, featureID) {
		return failure(fmt.Sprintf("delete feature %d", featureID), a.features.Err())
	}

	fmt.Fprintf(a.out, "✓ Deleted feature %d\n", featureID)
	return nil
}
