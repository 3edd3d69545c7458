package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.trai.ch/rv/internal/ui/style"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local repository-index cache",
	}
	cacheCmd.AddCommand(c.newCacheCleanCmd())
	return cacheCmd
}

func (c *CLI) newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete every cached repository index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.CleanCache(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Check, "cache cleared")
			return nil
		},
	}
}
