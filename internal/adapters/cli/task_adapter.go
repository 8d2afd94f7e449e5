package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
)

// TaskChanges holds the flags given to a task update. Nil fields keep the
// cached value.
type TaskChanges struct {
	Name        *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.Priority
	AssignedTo  *int
	Unassign    bool
	StartDate   *models.Date
	DueDate     *models.Date
}

func (c TaskChanges) empty() bool {
	return c.Name == nil && c.Description == nil && c.Status == nil && c.Priority == nil &&
		c.AssignedTo == nil && !c.Unassign && c.StartDate == nil && c.DueDate == nil
}

// Apply returns input with the given changes applied.
func (c TaskChanges) Apply(input models.TaskInput) models.TaskInput {
	if c.Name != nil {
		input.Name = *c.Name
	}
	if c.Description != nil {
		input.Description = *c.Description
	}
	if c.Status != nil {
		input.Status = *c.Status
	}
	if c.Priority != nil {
		input.Priority = *c.Priority
	}
	if c.Unassign {
		input.AssignedTo = nil
	} else if c.AssignedTo != nil {
		id := *c.AssignedTo
		input.AssignedTo = &id
	}
	if c.StartDate != nil {
		input.StartDate = *c.StartDate
	}
	if c.DueDate != nil {
		input.DueDate = *c.DueDate
	}
	return input
}

// TaskAdapter is a thin adapter that translates CLI operations to TaskService calls.
type TaskAdapter struct {
	service primary.TaskService
	out     io.Writer
}

// NewTaskAdapter creates a new TaskAdapter with the given service.
func NewTaskAdapter(service primary.TaskService, out io.Writer) *TaskAdapter {
	return &TaskAdapter{
		service: service,
		out:     out,
	}
}

// Mine prints the current user's tasks, most urgent first.
func (a *TaskAdapter) Mine() error {
	tasks := a.service.MyTasks()
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks assigned to you")
		return nil
	}
	a.printEnriched(tasks)
	return nil
}

// All prints every cached task with its feature and project context.
func (a *TaskAdapter) All() error {
	tasks := a.service.EnrichedTasks()
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found")
		return nil
	}
	a.printEnriched(tasks)
	return nil
}

func (a *TaskAdapter) printEnriched(tasks []enrich.EnrichedTask) {
	fmt.Fprintf(a.out, "\n%-6s %-12s %-8s %-14s %-8s %s\n", "ID", "STATUS", "PRIORITY", "DUE", "SPAN", "TASK")
	fmt.Fprintln(a.out, rule)
	for _, t := range tasks {
		fmt.Fprintf(a.out, "%-6d %-12s %-8s %-14s %-8s %s%s\n",
			t.ID,
			colorizeStatus(t.Status),
			colorizePriority(t.Priority),
			dash(t.Display.DueDate),
			dash(t.Display.Duration),
			t.Name,
			overdueMarker(t.Display.IsOverdue))
		if where := taskContext(t.Context); where != "" {
			fmt.Fprintf(a.out, "       └─ %s\n", where)
		}
	}
	fmt.Fprintln(a.out)
}

func taskContext(c enrich.Context) string {
	switch {
	case c.Project != nil && c.Feature != nil:
		return fmt.Sprintf("%s / %s", c.Project.Name, c.Feature.Name)
	case c.Feature != nil:
		return c.Feature.Name
	default:
		return ""
	}
}

// FeatureTasks fetches and prints the tasks of one feature.
func (a *TaskAdapter) FeatureTasks(ctx context.Context, projectID, featureID int) error {
	tasks := a.service.LoadFeatureTasks(ctx, projectID, featureID)
	if tasks == nil && a.service.Err() != nil {
		return failure(fmt.Sprintf("load tasks of feature %d", featureID), a.service.Err())
	}
	a.printTasks(featureID, tasks)
	return nil
}

// CachedFeatureTasks prints the cached tasks of one feature without a fetch.
func (a *TaskAdapter) CachedFeatureTasks(featureID int) error {
	a.printTasks(featureID, a.service.TasksByFeature(featureID))
	return nil
}

func (a *TaskAdapter) printTasks(featureID int, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintf(a.out, "Feature %d has no tasks\n", featureID)
		return
	}

	fmt.Fprintf(a.out, "\n%-6s %-12s %-8s %s\n", "ID", "STATUS", "PRIORITY", "TASK")
	fmt.Fprintln(a.out, rule)
	for _, t := range tasks {
		fmt.Fprintf(a.out, "%-6d %-12s %-8s %s\n", t.ID, colorizeStatus(t.Status), colorizePriority(t.Priority), t.Name)
	}
	fmt.Fprintln(a.out)
}

// Create creates a task under a feature.
func (a *TaskAdapter) Create(ctx context.Context, projectID, featureID int, input models.TaskInput) error {
	task, err := a.service.CreateTask(ctx, projectID, featureID, input)
	if err != nil {
		return err
	}
	if task == nil {
		return failure("create task", a.service.Err())
	}

	fmt.Fprintf(a.out, "✓ Created task %d: %s\n", task.ID, task.Name)
	return nil
}

// Update applies changes on top of the cached task.
func (a *TaskAdapter) Update(ctx context.Context, id int, changes TaskChanges) error {
	if changes.empty() {
		return fmt.Errorf("no changes given")
	}
	current, ok := a.service.Task(id)
	if !ok {
		return fmt.Errorf("task %d is not cached\nHint: run 'sprintdesk refresh' first", id)
	}

	task, err := a.service.UpdateTask(ctx, id, changes.Apply(models.InputFromTask(current)))
	if err != nil {
		return err
	}
	if task == nil {
		return failure(fmt.Sprintf("update task %d", id), a.service.Err())
	}

	fmt.Fprintf(a.out, "✓ Task %d updated\n", id)
	return nil
}

// Toggle flips a task between completed and not started.
func (a *TaskAdapter) Toggle(ctx context.Context, id int) error {
	task := a.service.ToggleTask(ctx, id)
	if task == nil {
		return failure(fmt.Sprintf("toggle task %d", id), a.service.Err())
	}

	fmt.Fprintf(a.out, "✓ Task %d is now %s\n", id, colorizeStatus(task.Status))
	return nil
}

// Delete deletes a task.
func (a *TaskAdapter) Delete(ctx context.Context, id int) error {
	if !a.service.DeleteTask(ctx, id) {
		return failure(fmt.Sprintf("delete task %d", id), a.service.Err())
	}

	fmt.Fprintf(a.out, "✓ Deleted task %d\n", id)
	return nil
}
