package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"incus-snapshot/src/export"
	"incus-snapshot/src/snapshot"
)

func newExportCmd(stdout, stderr io.Writer) *cobra.Command {
	var project, dest string
	cmd := &cobra.Command{
		Use:   "export INSTANCE",
		Short: "Download a full instance export to a local directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if project == "" {
				project = cfg.Project
			}
			if dest == "" {
				dest = cfg.ExportDir
			}
			if dest == "" {
				return errors.New("--dest is required (or export_dir in the config file)")
			}
			ref := snapshot.InstanceRef{Project: project, Name: args[0]}

			if getSafetyOptions(cmd).DryRun {
				fmt.Fprintf(stdout, "Would export %s to %s\n", ref, dest)
				return nil
			}

			client, err := connectClient()
			if err != nil {
				return err
			}
			dir, err := export.Instance(client, dest, ref, time.Now(), stderr)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Exported %s to %s\n", ref, dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Incus project (default from config)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination directory for the export")
	return cmd
}
