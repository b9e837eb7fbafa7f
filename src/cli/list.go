package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"incus-snapshot/src/incusapi"
	"incus-snapshot/src/snapshot"
)

func newListCmd(stdout, stderr io.Writer) *cobra.Command {
	var project, output string
	var reload bool
	cmd := &cobra.Command{
		Use:   "list INSTANCE",
		Short: "List the known snapshots of an instance",
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

			svc, caller, err := newService(stderr)
			if err != nil {
				return err
			}
			if res := svc.LoadSnapshots(snapshot.LoadRequest{Instance: ref, Caller: caller, Reload: reload}); res.Status != snapshot.StatusOK {
				return res.Err
			}
			snaps, _ := svc.Cache().Get(ref)

			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snaps)
			case "table", "":
				return renderSnapshotTable(stdout, snaps)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Incus project (default from config)")
	cmd.Flags().BoolVar(&reload, "reload", false, "Bypass the cache and ask the server")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func renderSnapshotTable(w io.Writer, snaps []incusapi.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCREATED\tSIZE\tSTATEFUL")
	for _, s := range snaps {
		size := "-"
		if s.Size > 0 {
			size = humanize.Bytes(uint64(s.Size))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", s.Name, s.CreatedAt.UTC().Format("2006-01-02 15:04:05"), size, s.Stateful)
	}
	return tw.Flush()
}
