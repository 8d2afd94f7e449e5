package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
)

// ProjectFilter selects which cached projects List prints.
type ProjectFilter struct {
	Owned     bool
	Member    bool
	DueWithin int // days; 0 disables
	Now       time.Time
}

// ProjectChanges holds the flags given to a project update. Nil fields keep
// the current value.
type ProjectChanges struct {
	Name        *string
	Description *string
	DueDate     *time.Time
}

// ProjectAdapter is a thin adapter that translates CLI operations to ProjectService calls.
type ProjectAdapter struct {
	service primary.ProjectService
	dates   enrich.Format
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, dates enrich.Format, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		service: service,
		dates:   dates,
		out:     out,
	}
}

// List prints cached projects.
func (a *ProjectAdapter) List(filter ProjectFilter) error {
	var projects []models.Project
	switch {
	case filter.Owned:
		projects = a.service.OwnedProjects()
	case filter.Member:
		projects = a.service.MemberProjects()
	case filter.DueWithin > 0:
		projects = a.service.ProjectsDueWithin(filter.DueWithin, filter.Now)
	default:
		projects = a.service.Projects()
	}

	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-14s %-8s %s\n", "ID", "DUE", "OWNER", "NAME")
	fmt.Fprintln(a.out, rule)
	for _, p := range projects {
		fmt.Fprintf(a.out, "%-6d %-14s %-8d %s\n", p.ID, dash(enrich.FormatDate(p.DueDate, a.dates)), p.OwnerID, p.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show fetches a project through the cache and prints it with its members.
func (a *ProjectAdapter) Show(ctx context.Context, id int) (*models.Project, error) {
	project := a.service.GetProject(ctx, id)
	if project == nil {
		if cached, ok := a.service.Focused(); ok && cached.ID == id {
			fmt.Fprintf(a.out, "%s showing cached copy: %s\n", color.New(color.FgYellow).Sprint("!"), a.service.Err())
			project = &cached
		} else {
			return nil, failure(fmt.Sprintf("get project %d", id), a.service.Err())
		}
	}

	fmt.Fprintf(a.out, "\nProject: %d\n", project.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", project.Description)
	}
	fmt.Fprintf(a.out, "Owner:   %d\n", project.OwnerID)
	fmt.Fprintf(a.out, "Due:     %s\n", dash(enrich.FormatDate(project.DueDate, a.dates)))

	if members := a.service.LoadProjectUsers(ctx, id); len(members) > 0 {
		names := make([]string, len(members))
		for i, u := range members {
			names[i] = u.DisplayName()
		}
		fmt.Fprintf(a.out, "Members: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(a.out)

	return project, nil
}

// Create creates a project.
func (a *ProjectAdapter) Create(ctx context.Context, input models.ProjectInput) error {
	project, err := a.service.CreateProject(ctx, input)
	if err != nil {
		return err
	}
	if project == nil {
		return failure("create project", a.service.Err())
	}

	fmt.Fprintf(a.out, "✓ Created project %d: %s\n", project.ID, project.Name)
	return nil
}

// Update applies changes on top of the project's current values.
func (a *ProjectAdapter) Update(ctx context.Context, id int, changes ProjectChanges) error {
	if changes.Name == nil && changes.Description == nil && changes.DueDate == nil {
		return fmt.Errorf("must specify at least --name, --description or --due")
	}

	current := a.service.GetProject(ctx, id)
	if current == nil {
		return failure(fmt.Sprintf("get project %d", id), a.service.Err())
	}
	input := models.ProjectInput{
		Name:        current.Name,
		Description: current.Description,
		DueDate:     models.Day{Time: current.DueDate.Time},
	}
	if changes.Name != nil {
		input.Name = *changes.Name
	}
	if changes.Description != nil {
		input.Description = *changes.Description
	}
	if changes.DueDate != nil {
		input.DueDate = models.Day{Time: *changes.DueDate}
	}

	project, err := a.service.UpdateProject(ctx, id, input)
	if err != nil {
		return err
	}
	if project == nil {
		return failure(fmt.Sprintf("update project %d", id), a.service.Err())
	}

	fmt.Fprintf(a.out, "✓ Project %d updated\n", id)
	return nil
}

// Delete deletes a project.
func (a *ProjectAdapter) Delete(ctx context.Context, id int) error {
	ok, err := a.service.DeleteProject(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return failure(fmt.Sprintf("delete project %d", id), a.service.Err())
	}

	fmt.Fprintf(a.out, "✓ Deleted project %d\n", id)
	return nil
}
