package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/ui/style"
)

func (c *CLI) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Resolve the dependency closure and write the lockfile, without touching the library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectRoot, mode, _, err := readCommonFlags(cmd)
			if err != nil {
				return err
			}

			result, err := c.app.Plan(cmd.Context(), projectRoot, mode)
			if err != nil {
				return err
			}

			path := domain.DefaultLockfilePath(projectRoot)
			if err := c.app.WriteLockfile(path, result.Lockfile); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), style.Check, "wrote lockfile for", len(result.Lockfile.Entries), "packages")
			return nil
		},
	}
}
