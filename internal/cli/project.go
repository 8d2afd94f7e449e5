package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/sprintdesk/internal/adapters/cli"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage projects",
	Long:    "List, show, create, update and delete projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		owned, _ := cmd.Flags().GetBool("owned")
		member, _ := cmd.Flags().GetBool("member")
		due, _ := cmd.Flags().GetInt("due")
		if owned && member {
			return fmt.Errorf("--owned and --member are mutually exclusive")
		}
		if due < 0 {
			return fmt.Errorf("--due must not be negative")
		}

		if err := loadCache(ctx); err != nil {
			return err
		}
		return wire.ProjectAdapter().List(cliadapter.ProjectFilter{
			Owned:     owned,
			Member:    member,
			DueWithin: due,
			Now:       time.Now(),
		})
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show project details and members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		if err := loadCache(ctx); err != nil {
			return err
		}
		_, err = wire.ProjectAdapter().Show(ctx, id)
		return err
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		description, _ := cmd.Flags().GetString("description")
		due, _, err := dateFlag(cmd, "due")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}

		return wire.ProjectAdapter().Create(ctx, models.ProjectInput{
			Name:        args[0],
			Description: description,
			DueDate:     models.Day{Time: due.Time},
		})
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update [project-id]",
	Short: "Update a project you own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}

		var changes cliadapter.ProjectChanges
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			changes.Name = &name
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			changes.Description = &description
		}
		if due, ok, err := dateFlag(cmd, "due"); err != nil {
			return err
		} else if ok {
			changes.DueDate = &due.Time
		}

		if err := loadForWrite(ctx); err != nil {
			return err
		}
		return wire.ProjectAdapter().Update(ctx, id, changes)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project you own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}
		return wire.ProjectAdapter().Delete(ctx, id)
	},
}

// ProjectCmd returns the project command with all subcommands attached.
func ProjectCmd() *cobra.Command {
	projectListCmd.Flags().Bool("owned", false, "Only projects you own")
	projectListCmd.Flags().Bool("member", false, "Only projects you are a member of")
	projectListCmd.Flags().Int("due", 0, "Only projects due within N days")

	projectCreateCmd.Flags().StringP("description", "d", "", "Project description")
	projectCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")

	projectUpdateCmd.Flags().StringP("name", "n", "", "New name")
	projectUpdateCmd.Flags().StringP("description", "d", "", "New description")
	projectUpdateCmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	return projectCmd
}
