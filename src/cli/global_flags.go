package cli

import (
	"github.com/spf13/cobra"

	"incus-snapshot/src/config"
	"incus-snapshot/src/safety"
)

// addGlobalFlags adds the persistent flags shared by every subcommand.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("dry-run", false, "Show planned actions without making changes")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	cmd.PersistentFlags().String("config", "", "Config file (default ~/.config/incus-snapshot/config.yaml)")
	cmd.PersistentFlags().String("log-level", "warning", "Log level: debug|info|warning|error")
}

// getSafetyOptions reads global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	return safety.Options{DryRun: dry, Yes: yes}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return config.Load(path)
}
