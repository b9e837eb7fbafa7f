package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command for the incus-snapshot CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "incus-snapshot",
		Short:         "Safely snapshot, restore, and export Incus instances",
		Long:          "incus-snapshot stops an instance, takes or restores a point-in-time snapshot, and restarts it, guaranteeing the restart even when the snapshot step fails.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newCreateCmd(stdout, stderr))
	cmd.AddCommand(newRestoreCmd(stdout, stderr))
	cmd.AddCommand(newListCmd(stdout, stderr))
	cmd.AddCommand(newExportCmd(stdout, stderr))
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

func setupLogging(cmd *cobra.Command) error {
	level, _ := cmd.Root().PersistentFlags().GetString("log-level")
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	logrus.SetLevel(lv)
	logrus.SetOutput(cmd.ErrOrStderr())
	return nil
}

// Execute runs the CLI with the process stdio.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
