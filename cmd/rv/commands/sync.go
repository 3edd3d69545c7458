package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/rv/internal/ui/style"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Apply the plan: install, update, and remove packages to match the desired state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectRoot, mode, workers, err := readCommonFlags(cmd)
			if err != nil {
				return err
			}

			sink := &cliProgressSink{out: cmd.OutOrStdout()}
			result, syncErr := c.app.Sync(cmd.Context(), projectRoot, mode, sink, workers)
			if syncErr != nil {
				fmt.Fprintln(cmd.OutOrStdout(), style.Cross, "sync completed with failures")
				return syncErr
			}

			renderSyncResult(cmd, result)
			return nil
		},
	}
}

// cliProgressSink prints one line per sync-engine event as it happens
// (§9 "Progress reporting is a collaborator, not a core concern").
type cliProgressSink struct {
	out io.Writer
}

func (s *cliProgressSink) OnEvent(e domain.ProgressEvent) {
	switch e.Kind {
	case domain.EventTaskStarted:
		fmt.Fprintf(s.out, "%s %s %s\n", style.Circle, e.Action, e.Name)
	case domain.EventTaskDone:
		fmt.Fprintf(s.out, "%s %s %s\n", style.Check, e.Action, e.Name)
	case domain.EventTaskFailed:
		fmt.Fprintf(s.out, "%s %s %s: %v\n", style.Cross, e.Action, e.Name, e.Err)
	case domain.EventTaskDeferred:
		fmt.Fprintf(s.out, "%s %s %s deferred: package directory is open\n", style.Warning, e.Action, e.Name)
	case domain.EventTaskUnreachable:
		fmt.Fprintf(s.out, "%s %s %s unreachable: a dependency failed\n", style.Tilde, e.Action, e.Name)
	}
}

// renderSyncResult prints the final status line. By the time this runs
// the caller has already handled a non-nil error from Sync, so result
// here always reports success; it's still checked directly rather than
// assumed, since Succeeded() is the authoritative signal.
func renderSyncResult(cmd *cobra.Command, result ports.SyncResult) {
	if result.Succeeded() {
		fmt.Fprintln(cmd.OutOrStdout(), style.Check, "sync complete")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), style.Cross, "sync completed with failures")
}
