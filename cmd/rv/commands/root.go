// Package commands implements the CLI commands for rv.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"go.trai.ch/rv/internal/app"
	"go.trai.ch/rv/internal/build"
)

// CLI represents the command line interface for rv.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rv",
		Short:         "A declarative, reproducible package manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().StringP("project", "p", "", "Project root (default: current directory)")
	rootCmd.PersistentFlags().Bool("upgrade", false, "Skip the lockfile at resolution priority step 3")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "Worker count ceiling (default: number of CPUs)")

	c := &CLI{app: a, rootCmd: rootCmd}

	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newCacheCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects the root command's output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func projectRootFromFlag(explicit string) (string, error) {
	return app.ProjectRoot(explicit)
}
