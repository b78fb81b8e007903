package main

import (
	"fmt"
	"strconv"

	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/tui"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [parent-dir] [re-start] [re-end] [re-step]",
	Short: "Create one run per Reynolds number from a base run",
	Long: `Creates parent-dir/reNNNN.NN for every value re-start, re-start+re-step, ...
below re-end. Each run gets the parent's state.000000, its job scripts and its
parameter file with physics.re set and the counters at zero.`,
	Args: cobra.ExactArgs(4),
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	var values [3]float64
	for i, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", arg, err)
		}
		values[i] = v
	}
	req := restart.SweepRequest{ParentDir: args[0], Start: values[0], End: values[1], Step: values[2]}

	j := openJournal()
	defer j.Close()
	op := j.start(models.OperationSweep, args[0], req)

	res, err := engine.Sweep(req)
	if op != nil && res != nil {
		op.Details = fmt.Sprintf("created %d run(s)", len(res.Runs))
	}
	j.finish(op, req, err)
	if err != nil {
		return err
	}
	return emit(res, tui.RenderSweep(res))
}
