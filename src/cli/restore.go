package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"incus-snapshot/src/incusapi"
	"incus-snapshot/src/safety"
	"incus-snapshot/src/snapshot"
)

func newRestoreCmd(stdout, stderr io.Writer) *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "restore INSTANCE [SNAPSHOT]",
		Short: "Roll an instance back to a snapshot",
		Long:  "Roll an instance back to a snapshot. With no SNAPSHOT argument the instance must have exactly one snapshot.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if project == "" {
				project = cfg.Project
			}
			ref := snapshot.InstanceRef{Project: project, Name: args[0]}

			svc, caller, err := newService(stderr)
			if err != nil {
				return err
			}

			if res := svc.LoadSnapshots(snapshot.LoadRequest{Instance: ref, Caller: caller, Reload: true}); res.Status != snapshot.StatusOK {
				return res.Err
			}
			snaps, _ := svc.Cache().Get(ref)

			var target incusapi.Snapshot
			switch {
			case len(args) == 2:
				found := false
				for _, s := range snaps {
					if s.Name == args[1] {
						target, found = s, true
						break
					}
				}
				if !found {
					return fmt.Errorf("instance %s has no snapshot named %q", ref, args[1])
				}
			case len(snaps) == 1:
				target = snaps[0]
			case len(snaps) == 0:
				return fmt.Errorf("instance %s has no snapshots", ref)
			default:
				return fmt.Errorf("instance %s has %d snapshots; name one explicitly", ref, len(snaps))
			}

			confirmed, err := safety.Confirm(getSafetyOptions(cmd), os.Stdin, stdout,
				"Restore snapshot %s onto %s? Changes since the snapshot are lost.", target.Name, ref)
			if err != nil {
				return err
			}
			if !confirmed {
				// Aborted before any orchestration started.
				res := snapshot.Cancelled()
				fmt.Fprintf(stdout, "Restore %s\n", res.Status)
				return nil
			}

			res := svc.RestoreSnapshot(snapshot.RestoreRequest{
				Instance:   ref,
				Caller:     caller,
				Snapshot:   target,
				OnProgress: progressObserver(stdout, "Restoring snapshot"),
			})
			if res.Status != snapshot.StatusOK {
				return res.Err
			}
			fmt.Fprintf(stdout, "Restored snapshot %s onto %s\n", target.Name, ref)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Incus project (default from config)")
	return cmd
}
