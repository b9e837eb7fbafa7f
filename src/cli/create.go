package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"incus-snapshot/src/snapshot"
)

func newCreateCmd(stdout, stderr io.Writer) *cobra.Command {
	var project, name string
	cmd := &cobra.Command{
		Use:   "create INSTANCE",
		Short: "Take a point-in-time snapshot of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if project == "" {
				project = cfg.Project
			}
			ref := snapshot.InstanceRef{Project: project, Name: args[0]}

			if getSafetyOptions(cmd).DryRun {
				fmt.Fprintf(stdout, "Would stop %s, create a snapshot, and restart it\n", ref)
				return nil
			}

			svc, caller, err := newService(stderr)
			if err != nil {
				return err
			}

			snapName := name
			if snapName == "" && cfg.SnapshotPrefix != "" {
				snapName = cfg.SnapshotPrefix + "-" + time.Now().UTC().Format("20060102T150405Z")
			}

			res := svc.CreateSnapshot(snapshot.CreateRequest{
				Instance:     ref,
				Caller:       caller,
				SnapshotName: snapName,
				OnProgress:   progressObserver(stdout, "Creating snapshot"),
			})
			if res.Status != snapshot.StatusOK {
				return res.Err
			}
			snaps, _ := svc.Cache().Get(ref)
			fmt.Fprintf(stdout, "Created snapshot %s of %s\n", snaps[0].Name, ref)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Incus project (default from config)")
	cmd.Flags().StringVar(&name, "name", "", "Snapshot name (generated when empty)")
	return cmd
}
