package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Options carries the global safety flags.
type Options struct {
	// DryRun means no changes may be made; prompts are treated as declined.
	DryRun bool
	// Yes answers every prompt with yes, for non-interactive runs.
	Yes bool
}

// Confirm prompts the user before a destructive action such as restoring a
// snapshot over a running instance. It returns false when the user declines
// or when DryRun is set; the caller decides what declining means (this tool
// reports it as a cancelled operation).
func Confirm(opts Options, in io.Reader, out io.Writer, format string, args ...any) (bool, error) {
	if opts.DryRun {
		return false, nil
	}
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(fmt.Sprintf(format, args...)))
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
