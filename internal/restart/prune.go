package restart

import (
	"errors"
	"fmt"

	"github.com/fentz26/dnsrun/internal/logging"
	"github.com/fentz26/dnsrun/internal/rundir"
)

// PruneRequest asks to delete snapshots older than the committed
// resumption point.
type PruneRequest struct {
	RunDir string
	DryRun bool
}

// PruneResult lists what a prune deleted, or would delete on a dry run.
type PruneResult struct {
	RunDir   string   `json:"run_dir"`
	IStart   int64    `json:"i_start"`
	Retained int      `json:"retained"`
	Deleted  []string `json:"deleted"`
	Kept     []string `json:"kept"`
	Warnings []string `json:"warnings,omitempty"`
	DryRun   bool     `json:"dry_run"`
}

// RetainedIndex is the snapshot index a parameter set resumes from,
// i_start / i_save_fields.
func RetainedIndex(iStart, saveInterval int64) int {
	return int(iStart / saveInterval)
}

// PlanPrune splits snaps into those to delete and those to keep.
func PlanPrune(snaps []rundir.Snapshot, retained int) (deleted, kept []rundir.Snapshot) {
	for _, s := range snaps {
		if s.Index < retained {
			deleted = append(deleted, s)
		} else {
			kept = append(kept, s)
		}
	}
	return deleted, kept
}

// Prune deletes every snapshot whose index is below the one the persisted
// parameters resume from. It trusts the parameter file: pruning before a
// continuation has been committed deletes the snapshot it would need.
func (e *Engine) Prune(req PruneRequest) (*PruneResult, error) {
	d, err := e.openRun(req.RunDir)
	if err != nil {
		return nil, err
	}
	doc, err := e.params.Load(d)
	if err != nil {
		return nil, err
	}
	iStart, err := doc.Int(groupInitiation, keyIStart)
	if err != nil {
		return nil, requiredParameter(err)
	}
	n, err := saveInterval(doc)
	if err != nil {
		return nil, err
	}

	res := &PruneResult{
		RunDir:   d.Root(),
		IStart:   iStart,
		Retained: RetainedIndex(iStart, n),
		Deleted:  []string{},
		Kept:     []string{},
		DryRun:   req.DryRun,
	}

	snaps, err := rundir.Scan(d)
	if errors.Is(err, rundir.ErrNoSnapshots) {
		e.logger.Debug("no snapshots to prune", logging.RunDirKey, d.Root())
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	deleted, kept := PlanPrune(snaps, res.Retained)
	for _, s := range kept {
		res.Kept = append(res.Kept, s.Name)
	}
	if !d.Exists(rundir.SnapshotName(res.Retained)) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("snapshot %s, the resumption point of the current parameters, is missing", rundir.SnapshotName(res.Retained)))
	}

	for _, s := range deleted {
		if !req.DryRun {
			if err := d.Remove(s.Name); err != nil {
				return res, fmt.Errorf("delete %s: %w", s.Name, err)
			}
			e.logger.Info("deleted snapshot", logging.RunDirKey, d.Root(), logging.SnapshotKey, s.Name)
		}
		res.Deleted = append(res.Deleted, s.Name)
	}
	return res, nil
}
