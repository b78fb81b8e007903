package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fentz26/dnsrun/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-dir]",
	Short: "List recorded operations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of operations to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.Journal == "" {
		return errors.New("operation journal is disabled")
	}
	s, err := store.New(cfg.Journal)
	if err != nil {
		return err
	}
	defer s.Close()

	var runDir string
	if len(args) == 1 {
		if runDir, err = filepath.Abs(args[0]); err != nil {
			return err
		}
	}
	ops, err := s.ListOperations(runDir, historyLimit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return emit(ops, "")
	}
	if len(ops) == 0 {
		fmt.Println("No operations recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tKIND\tOUTCOME\tRUN\tSNAPSHOT\tI_START\tT_START\tDETAILS")
	for _, op := range ops {
		id := op.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%g\t%s\n",
			id, op.StartedAt.Local().Format("2006-01-02 15:04"), op.Kind, op.Outcome,
			op.RunDir, op.Snapshot, op.IStart, op.TStart, op.Details)
	}
	w.Flush()
	return nil
}
