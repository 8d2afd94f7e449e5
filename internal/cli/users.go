package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/sprintdesk/internal/wire"
)

// UsersCmd returns the users command.
func UsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List known users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadCache(NewContext()); err != nil {
				return err
			}
			return wire.UsersAdapter().List()
		},
	}
}
