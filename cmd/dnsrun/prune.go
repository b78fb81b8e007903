package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune [run-dir]",
	Short: "Delete snapshots older than the committed resumption point",
	Long: `Deletes every snapshot whose index is below initiation.i_start /
output.i_save_fields as currently written in the parameter file. Run it only
after the continuation you want to keep has been committed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrune,
}

var (
	pruneYes    bool
	pruneDryRun bool
)

var errPruneDeclined = errors.New("prune cancelled")

func init() {
	pruneCmd.Flags().BoolVarP(&pruneYes, "yes", "y", false, "Delete without asking")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "List the snapshots that would be deleted")
}

func runPrune(cmd *cobra.Command, args []string) error {
	preview, err := engine.Prune(restart.PruneRequest{RunDir: args[0], DryRun: true})
	if err != nil {
		return err
	}
	if pruneDryRun || len(preview.Deleted) == 0 {
		return emit(preview, tui.RenderPrune(preview))
	}

	if !pruneYes {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("refusing to delete %d snapshot(s) without a terminal; pass --yes", len(preview.Deleted))
		}
		for _, w := range preview.Warnings {
			fmt.Fprintln(os.Stderr, tui.Warning(w))
		}
		title := fmt.Sprintf("Delete %d snapshot(s) from %s?", len(preview.Deleted), preview.RunDir)
		ok, err := tui.Confirm(os.Stdin, os.Stdout, title, preview.Deleted)
		if err != nil {
			return err
		}
		if !ok {
			return errPruneDeclined
		}
	}

	req := restart.PruneRequest{RunDir: args[0]}
	j := openJournal()
	defer j.Close()
	op := j.start(models.OperationPrune, args[0], req)

	res, err := engine.Prune(req)
	if op != nil && res != nil {
		op.Snapshot = res.Retained
		op.IStart = res.IStart
		op.Details = fmt.Sprintf("deleted %d snapshot(s)", len(res.Deleted))
	}
	j.finish(op, req, err)
	if err != nil {
		return err
	}
	return emit(res, tui.RenderPrune(res))
}
