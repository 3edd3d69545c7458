package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/rv/internal/ui/style"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Report the diff between the library and the desired state, without mutating anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectRoot, mode, _, err := readCommonFlags(cmd)
			if err != nil {
				return err
			}

			result, err := c.app.Plan(cmd.Context(), projectRoot, mode)
			if err != nil {
				return err
			}

			renderPlan(cmd, result.Plan)
			return nil
		},
	}
}

func renderPlan(cmd *cobra.Command, plan domain.Plan) {
	if plan.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), style.Check, "library already matches the desired state")
		return
	}

	for _, step := range plan.Steps {
		if step.Action == domain.ActionUpToDate {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), planLine(step))
	}
}

func planLine(step domain.PlanStep) string {
	switch step.Action {
	case domain.ActionInstall:
		return style.Dot + " install  " + step.Name
	case domain.ActionUpdate:
		return style.Tilde + " update   " + step.Name
	case domain.ActionRemove:
		return style.Cross + " remove   " + step.Name
	default:
		return style.Circle + " " + string(step.Action) + " " + step.Name
	}
}

func readCommonFlags(cmd *cobra.Command) (projectRoot string, mode ports.ResolutionMode, workers int, err error) {
	projectFlag, err := cmd.Flags().GetString("project")
	if err != nil {
		return "", "", 0, err
	}
	upgrade, err := cmd.Flags().GetBool("upgrade")
	if err != nil {
		return "", "", 0, err
	}
	workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return "", "", 0, err
	}

	mode = ports.ModeSync
	if upgrade {
		mode = ports.ModeUpgrade
	}

	root, err := projectRootFromFlag(projectFlag)
	if err != nil {
		return "", "", 0, err
	}
	return root, mode, workers, nil
}
