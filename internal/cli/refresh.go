package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/sprintdesk/internal/wire"
)

// RefreshCmd returns the refresh command.
func RefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload every entity from the backend",
		Long: `Reload projects, sprints, features, tasks and users from the backend
and save an offline snapshot. With --offline, load the last snapshot instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.RefreshAdapter().Refresh(NewContext(), offline)
		},
	}
}
