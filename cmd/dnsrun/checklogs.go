package main

import (
	"fmt"

	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/fentz26/dnsrun/internal/timeseries"
	"github.com/fentz26/dnsrun/internal/tui"
	"github.com/spf13/cobra"
)

var checkLogsCmd = &cobra.Command{
	Use:   "check-logs [run-dir]",
	Short: "Report diagnostic log rows whose step goes backwards",
	Long: `Truncation keeps rows up to the first one past the cutoff, which is only
correct when steps never decrease. check-logs lists every row that breaks that
and exits non-zero if any exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckLogs,
}

func runCheckLogs(cmd *cobra.Command, args []string) error {
	d := rundir.OS{}.Dir(args[0])
	if !d.IsDir() {
		return fmt.Errorf("%s: not a run directory", args[0])
	}
	results, err := timeseries.ValidateAll(d, cfg.LogPattern, cfg.Schemas())
	if err != nil {
		return err
	}

	if len(results) == 0 {
		if jsonOutput {
			return emit([]timeseries.FileViolations{}, "")
		}
		fmt.Println(tui.Success("all logs are in step order"))
		return nil
	}
	if err := emit(results, tui.RenderViolations(results)); err != nil {
		return err
	}
	return fmt.Errorf("%d log(s) with out-of-order rows", len(results))
}
