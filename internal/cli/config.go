package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/sprintdesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sprintdesk configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, err := config.Path()
		if err != nil {
			return err
		}

		written, err := config.Init(path, force)
		if err != nil {
			return err
		}
		if !written {
			fmt.Printf("Config already exists at %s (use --force to overwrite)\n", path)
			return nil
		}

		fmt.Printf("✓ Wrote default config to %s\n", path)
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  sprintdesk login --email you@example.com --password-stdin")
		fmt.Println("  sprintdesk refresh")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))

		cachePath, err := cfg.CachePath()
		if err != nil {
			return err
		}
		fmt.Printf("# cache: %s\n", cachePath)
		if cfg.Password != "" {
			fmt.Printf("# password: set via %s\n", config.EnvPassword)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

// ConfigCmd returns the config command with all subcommands attached.
func ConfigCmd() *cobra.Command {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	return configCmd
}
