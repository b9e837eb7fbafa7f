package cli

import (
	"fmt"
	"io"

	"incus-snapshot/src/snapshot"
)

var stepLabels = map[snapshot.Step]string{
	snapshot.StepStoppingInstance:        "Stopping instance",
	snapshot.StepCreateOrRestoreSnapshot: "Snapshotting",
	snapshot.StepRestartingInstance:      "Restarting instance",
}

// progressObserver renders one line per step: the label when the step starts,
// then its outcome. Events arrive in order, so this stays a plain stream.
func progressObserver(out io.Writer, action string) snapshot.Observer {
	return func(e snapshot.Event) {
		label := stepLabels[e.Step]
		if e.Step == snapshot.StepCreateOrRestoreSnapshot {
			label = action
		}
		switch e.State {
		case snapshot.StateInProgress:
			fmt.Fprintf(out, "%s... ", label)
		case snapshot.StateSuccess:
			fmt.Fprintln(out, "done")
		case snapshot.StateError:
			fmt.Fprintln(out, "failed")
		}
	}
}
