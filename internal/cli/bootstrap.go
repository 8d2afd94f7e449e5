// Package cli provides CLI commands for sprintdesk.
package cli

import (
	gocontext "context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/wire"
)

// offline is set by the persistent --offline flag.
var offline bool

// errOfflineReadOnly is returned by mutating commands run with --offline.
var errOfflineReadOnly = errors.New("--offline is read-only\nHint: drop --offline to change data on the backend")

// ConfigureGlobals registers the persistent flags shared by every command and
// applies them before any command runs.
func ConfigureGlobals(root *cobra.Command) {
	root.PersistentFlags().BoolP("verbose", "v", false, "Log requests and cache diagnostics to stderr")
	root.PersistentFlags().BoolVar(&offline, "offline", false, "Read from the last saved snapshot instead of the backend")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		wire.SetVerbose(verbose)
	}
}

// NewContext creates the context used for one CLI invocation.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	return gocontext.Background()
}

// loadCache fills the cache from the backend or, with --offline, from the
// snapshot.
func loadCache(ctx gocontext.Context) error {
	_, err := wire.RefreshAdapter().Load(ctx, offline)
	return err
}

// loadForWrite fills the cache from the backend before a mutation.
func loadForWrite(ctx gocontext.Context) error {
	if offline {
		return errOfflineReadOnly
	}
	return loadCache(ctx)
}

// parseID parses a positive numeric entity ID.
func parseID(arg, kind string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID '%s'. Expected a positive number", kind, arg)
	}
	return id, nil
}

// dateFlag parses a date flag. The second result is false when the flag was
// not given.
func dateFlag(cmd *cobra.Command, name string) (models.Date, bool, error) {
	if !cmd.Flags().Changed(name) {
		return models.Date{}, false, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, false, fmt.Errorf("--%s: %w", name, err)
	}
	return d, true, nil
}

// priorityFlag parses a priority flag given as low/medium/high or 0/1/2.
func priorityFlag(cmd *cobra.Command, name string) (models.Priority, bool, error) {
	if !cmd.Flags().Changed(name) {
		return models.PriorityLow, false, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	p, err := models.ParsePriority(raw)
	if err != nil {
		return 0, false, fmt.Errorf("--%s: %w", name, err)
	}
	return p, true, nil
}

// statusFlag parses a status flag case-insensitively.
func statusFlag(cmd *cobra.Command, name string) (models.TaskStatus, bool, error) {
	if !cmd.Flags().Changed(name) {
		return "", false, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	s, err := models.ParseTaskStatus(raw)
	if err != nil {
		return "", false, fmt.Errorf("--%s: %w", name, err)
	}
	return s, true, nil
}
