package main

import (
	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/tui"
	"github.com/spf13/cobra"
)

var continueCmd = &cobra.Command{
	Use:   "continue [run-dir]",
	Short: "Continue a run from its resumption snapshot",
	Long: `Points the run's parameter file at the resumption snapshot (the second
newest when three or more exist) and truncates every diagnostic log to the
resumption step. With --newdir the run continues in a fresh subdirectory
instead, seeded with the snapshot and with its counters at zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runContinue,
}

var (
	finishPlus     int64
	noRay          bool
	submitScript   string
	intoNewDir     bool
	forceDest      bool
	continueDryRun bool
)

func init() {
	continueCmd.Flags().Int64Var(&finishPlus, "i-finish-plus", 0, "Extend termination.i_finish by this many steps")
	continueCmd.Flags().BoolVar(&noRay, "noray", false, "Disable Rayleigh damping (physics.sigma_r = .false.)")
	continueCmd.Flags().StringVar(&submitScript, "script", "", "Job script to submit after continuing")
	continueCmd.Flags().BoolVar(&intoNewDir, "newdir", false, "Continue in a fresh subdirectory")
	continueCmd.Flags().BoolVar(&forceDest, "force", false, "Write into an existing subdirectory")
	continueCmd.Flags().BoolVar(&continueDryRun, "dry-run", false, "Print the plan without changing anything")
}

func runContinue(cmd *cobra.Command, args []string) error {
	req := restart.ContinueRequest{
		RunDir:         args[0],
		DisableDamping: noRay,
		Script:         submitScript,
		NewDir:         intoNewDir,
		Force:          forceDest,
		DryRun:         continueDryRun,
	}
	if cmd.Flags().Changed("i-finish-plus") {
		req.ExtraFinishSteps = &finishPlus
	}

	kind := models.OperationContinue
	if req.NewDir {
		kind = models.OperationNewDir
	}

	var (
		j  *journal
		op *models.Operation
	)
	if !req.DryRun {
		j = openJournal()
		defer j.Close()
		op = j.start(kind, args[0], req)
	}

	plan, err := engine.Continue(cmd.Context(), req)
	if j != nil {
		fromPlan(op, plan)
		j.finish(op, req, err)
	}
	if err != nil {
		if plan != nil {
			emit(plan, tui.RenderPlan(plan))
		}
		return err
	}
	return emit(plan, tui.RenderPlan(plan))
}
