package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/wire"
)

// projectFlag reads the required --project flag.
func projectFlag(cmd *cobra.Command) (int, error) {
	id, _ := cmd.Flags().GetInt("project")
	if id <= 0 {
		return 0, fmt.Errorf("--project is required")
	}
	return id, nil
}

// BoardCmd returns the board command.
func BoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board [project-id]",
		Short: "Show a project's sprints, features and parking lot",
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
			return wire.BoardAdapter().Board(id)
		},
	}
}

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprints",
	Long:  "Create, update and delete the sprints of a project",
}

// sprintInput reads the sprint flags. Unset flags keep the values in base.
func sprintInput(cmd *cobra.Command, base models.SprintInput) (models.SprintInput, error) {
	if cmd.Flags().Changed("name") {
		base.Name, _ = cmd.Flags().GetString("name")
	}
	if start, ok, err := dateFlag(cmd, "start"); err != nil {
		return base, err
	} else if ok {
		base.StartDate = start
	}
	if end, ok, err := dateFlag(cmd, "end"); err != nil {
		return base, err
	} else if ok {
		base.EndDate = end
	}
	return base, nil
}

var sprintCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		projectID, err := projectFlag(cmd)
		if err != nil {
			return err
		}
		input, err := sprintInput(cmd, models.SprintInput{Name: args[0]})
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}
		return wire.BoardAdapter().CreateSprint(ctx, projectID, input)
	},
}

var sprintUpdateCmd = &cobra.Command{
	Use:   "update [sprint-id]",
	Short: "Update a sprint's name or dates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		sprintID, err := parseID(args[0], "sprint")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}

		current, ok := wire.SprintService().Sprint(sprintID)
		if !ok {
			return fmt.Errorf("sprint %d not found", sprintID)
		}
		input, err := sprintInput(cmd, models.SprintInput{
			Name:      current.Name,
			StartDate: current.StartDate,
			EndDate:   current.EndDate,
		})
		if err != nil {
			return err
		}
		return wire.BoardAdapter().UpdateSprint(ctx, current.ProjectID, sprintID, input)
	},
}

var sprintDeleteCmd = &cobra.Command{
	Use:   "delete [sprint-id]",
	Short: "Delete a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		sprintID, err := parseID(args[0], "sprint")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}

		current, ok := wire.SprintService().Sprint(sprintID)
		if !ok {
			return fmt.Errorf("sprint %d not found", sprintID)
		}
		return wire.BoardAdapter().DeleteSprint(ctx, current.ProjectID, sprintID)
	},
}

// SprintCmd returns the sprint command with all subcommands attached.
func SprintCmd() *cobra.Command {
	sprintCreateCmd.Flags().IntP("project", "p", 0, "Project ID (required)")
	for _, c := range []*cobra.Command{sprintCreateCmd, sprintUpdateCmd} {
		c.Flags().String("start", "", "Start date (YYYY-MM-DD)")
		c.Flags().String("end", "", "End date (YYYY-MM-DD)")
	}
	sprintUpdateCmd.Flags().StringP("name", "n", "", "New name")

	sprintCmd.AddCommand(sprintCreateCmd)
	sprintCmd.AddCommand(sprintUpdateCmd)
	sprintCmd.AddCommand(sprintDeleteCmd)

	return sprintCmd
}

var featureCmd = &cobra.Command{
	Use:   "feature",
	Short: "Manage features",
	Long:  "Create, move, park and delete features on a project board",
}

// cachedFeature looks up a feature after the cache was loaded.
func cachedFeature(id int) (models.Feature, error) {
	feature, ok := wire.FeatureService().Feature(id)
	if !ok {
		return models.Feature{}, fmt.Errorf("feature %d not found", id)
	}
	return feature, nil
}

var featureCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a feature",
	Long:  "Create a feature in a sprint, or in the parking lot when --sprint is omitted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		projectID, err := projectFlag(cmd)
		if err != nil {
			return err
		}
		input := models.FeatureInput{Name: args[0]}
		input.Description, _ = cmd.Flags().GetString("description")
		if cmd.Flags().Changed("sprint") {
			sprintID, _ := cmd.Flags().GetInt("sprint")
			input.SprintID = &sprintID
		}
		if input.Priority, _, err = priorityFlag(cmd, "priority"); err != nil {
			return err
		}
		if input.Status, _, err = statusFlag(cmd, "status"); err != nil {
			return err
		}

		if err := loadForWrite(ctx); err != nil {
			return err
		}
		return wire.BoardAdapter().CreateFeature(ctx, projectID, input)
	},
}

var featureMoveCmd = &cobra.Command{
	Use:   "move [feature-id] [sprint-id]",
	Short: "Move a feature into a sprint of the same project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		featureID, err := parseID(args[0], "feature")
		if err != nil {
			return err
		}
		sprintID, err := parseID(args[1], "sprint")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}

		feature, err := cachedFeature(featureID)
		if err != nil {
			return err
		}
		return wire.BoardAdapter().MoveFeature(ctx, feature.ProjectID, featureID, sprintID)
	},
}

var featureParkCmd = &cobra.Command{
	Use:   "park [feature-id]",
	Short: "Move a feature to the parking lot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		featureID, err := parseID(args[0], "feature")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}

		feature, err := cachedFeature(featureID)
		if err != nil {
			return err
		}
		return wire.BoardAdapter().ParkFeature(ctx, feature.ProjectID, featureID)
	},
}

var featureDeleteCmd = &cobra.Command{
	Use:   "delete [feature-id]",
	Short: "Delete a feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		featureID, err := parseID(args[0], "feature")
		if err != nil {
			return err
		}
		if err := loadForWrite(ctx); err != nil {
			return err
		}

		feature, err := cachedFeature(featureID)
		if err != nil {
			return err
		}
		return wire.BoardAdapter().DeleteFeature(ctx, feature.ProjectID, featureID)
	},
}

var featureTasksCmd = &cobra.Command{
	Use:   "tasks [feature-id]",
	Short: "List the tasks of a feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		featureID, err := parseID(args[0], "feature")
		if err != nil {
			return err
		}
		if err := loadCache(ctx); err != nil {
			return err
		}

		feature, err := cachedFeature(featureID)
		if err != nil {
			return err
		}
		if offline {
			return wire.TaskAdapter().CachedFeatureTasks(featureID)
		}
		return wire.TaskAdapter().FeatureTasks(ctx, feature.ProjectID, featureID)
	},
}

// FeatureCmd returns the feature command with all subcommands attached.
func FeatureCmd() *cobra.Command {
	featureCreateCmd.Flags().IntP("project", "p", 0, "Project ID (required)")
	featureCreateCmd.Flags().IntP("sprint", "s", 0, "Sprint ID (omit for the parking lot)")
	featureCreateCmd.Flags().StringP("description", "d", "", "Feature description")
	featureCreateCmd.Flags().String("priority", "low", "Priority: low, medium or high")
	featureCreateCmd.Flags().String("status", "", "Status: not started, in progress or completed")

	featureCmd.AddCommand(featureCreateCmd)
	featureCmd.AddCommand(featureMoveCmd)
	featureCmd.AddCommand(featureParkCmd)
	featureCmd.AddCommand(featureDeleteCmd)
	featureCmd.AddCommand(featureTasksCmd)

	return featureCmd
}
