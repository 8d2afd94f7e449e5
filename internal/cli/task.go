package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/sprintdesk/internal/adapters/cli"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/wire"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Manage tasks",
	Long:    "List your tasks, and create, update, toggle and delete tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks, overdue and earliest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if err := loadCache(NewContext()); err != nil {
			return err
		}

		adapter := wire.TaskAdapter()
		if all {
			return adapter.All()
		}
		return adapter.Mine()
	},
}

var taskCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a task under a feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		featureID, _ := cmd.Flags().GetInt("feature")
		if featureID <= 0 {
			return fmt.Errorf("--feature is required")
		}

		var changes cliadapter.TaskChanges
		if err := readTaskChanges(cmd, &changes); err != nil {
			return err
		}
		input := changes.Apply(models.TaskInput{Name: args[0], Status: models.TaskStatusNotStarted})

		if err := loadForWrite(ctx); err != nil {
			return err
		}
		feature, err := cachedFeature(featureID)
		if err != nil {
			return err
		}
		return wire.TaskAdapter().Create(ctx, feature.ProjectID, featureID, input)
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		id, err := parseID(args[0], "task")
		if err != nil {
			return err
		}

		var changes cliadapter.TaskChanges
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			changes.Name = &name
		}
		if err := readTaskChanges(cmd, &changes); err != nil {
			return err
		}
		changes.Unassign, _ = cmd.Flags().GetBool("unassign")

		if err := loadForWrite(ctx); err != nil {
			return err
		}
		return wire.TaskAdapter().Update(ctx, id, changes)
	},
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle [task-id]",
	Short: "Toggle a task between completed and not started",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		id, err := parseID(args[0], "task")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}
		return wire.TaskAdapter().Toggle(ctx, id)
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		id, err := parseID(args[0], "task")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}
		return wire.TaskAdapter().Delete(ctx, id)
	},
}

// readTaskChanges reads the task flags shared by create and update.
func readTaskChanges(cmd *cobra.Command, changes *cliadapter.TaskChanges) error {
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		changes.Description = &description
	}
	if cmd.Flags().Changed("assign") {
		assignee, _ := cmd.Flags().GetInt("assign")
		changes.AssignedTo = &assignee
	}
	if p, ok, err := priorityFlag(cmd, "priority"); err != nil {
		return err
	} else if ok {
		changes.Priority = &p
	}
	if s, ok, err := statusFlag(cmd, "status"); err != nil {
		return err
	} else if ok {
		changes.Status = &s
	}
	if d, ok, err := dateFlag(cmd, "start"); err != nil {
		return err
	} else if ok {
		changes.StartDate = &d
	}
	if d, ok, err := dateFlag(cmd, "due"); err != nil {
		return err
	} else if ok {
		changes.DueDate = &d
	}
	return nil
}

// TaskCmd returns the task command with all subcommands attached.
func TaskCmd() *cobra.Command {
	taskListCmd.Flags().BoolP("all", "a", false, "Show every cached task, not only yours")

	taskCreateCmd.Flags().IntP("feature", "f", 0, "Feature ID (required)")
	for _, c := range []*cobra.Command{taskCreateCmd, taskUpdateCmd} {
		c.Flags().StringP("description", "d", "", "Task description")
		c.Flags().String("priority", "", "Priority: low, medium or high")
		c.Flags().String("status", "", "Status: not started, in progress or completed")
		c.Flags().Int("assign", 0, "Assign to user ID")
		c.Flags().String("start", "", "Start date (YYYY-MM-DD)")
		c.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	}
	taskUpdateCmd.Flags().StringP("name", "n", "", "New name")
	taskUpdateCmd.Flags().Bool("unassign", false, "Remove the assignee")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskDeleteCmd)

	return taskCmd
}
