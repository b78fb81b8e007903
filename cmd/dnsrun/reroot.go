package main

import (
	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/tui"
	"github.com/spf13/cobra"
)

var rerootCmd = &cobra.Command{
	Use:   "reroot [run-dir] [new-root]",
	Short: "Start a fresh copy of a run under another root",
	Long: `Creates new-root/<name of run-dir> seeded with the run's resumption
snapshot as state.000000, its job scripts and its parameter file with the
counters reset to zero. The source run is left untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: runReroot,
}

var (
	rerootFinishPlus int64
	rerootNoRay      bool
	rerootScript     string
	rerootForce      bool
	rerootDryRun     bool
)

func init() {
	rerootCmd.Flags().Int64Var(&rerootFinishPlus, "i-finish-plus", 0, "Extend termination.i_finish by this many steps")
	rerootCmd.Flags().BoolVar(&rerootNoRay, "noray", false, "Disable Rayleigh damping (physics.sigma_r = .false.)")
	rerootCmd.Flags().StringVar(&rerootScript, "script", "", "Job script to submit from the new directory")
	rerootCmd.Flags().BoolVar(&rerootForce, "force", false, "Write into an existing destination")
	rerootCmd.Flags().BoolVar(&rerootDryRun, "dry-run", false, "Print the plan without changing anything")
}

func runReroot(cmd *cobra.Command, args []string) error {
	req := restart.RerootRequest{
		RunDir:         args[0],
		NewRoot:        args[1],
		Script:         rerootScript,
		DisableDamping: rerootNoRay,
		Force:          rerootForce,
		DryRun:         rerootDryRun,
	}
	if cmd.Flags().Changed("i-finish-plus") {
		req.ExtraFinishSteps = &rerootFinishPlus
	}

	var (
		j  *journal
		op *models.Operation
	)
	if !req.DryRun {
		j = openJournal()
		defer j.Close()
		op = j.start(models.OperationReroot, args[0], req)
	}

	plan, err := engine.Reroot(cmd.Context(), req)
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
