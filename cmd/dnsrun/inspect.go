package main

import (
	"github.com/fentz26/dnsrun/internal/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [run-dir]",
	Short: "Show a run's snapshots, resumption point, parameters and logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	rep, err := engine.Inspect(args[0])
	if err != nil {
		return err
	}
	return emit(rep, tui.RenderReport(rep))
}
