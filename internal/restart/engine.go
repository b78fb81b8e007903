// Package restart keeps a DNS run directory consistent across restarts.
//
// A resumption point ties together a snapshot index, the step it was saved
// at (index × i_save_fields), the simulation time at that step and the rows
// of every diagnostic log. Continuing in place rewrites the parameter file to
// start from that point and truncates the logs to it; continuing into a new
// directory or rerooting copies the snapshot out as state.000000 and restarts
// the counters at zero; pruning deletes snapshots older than the committed
// point.
//
// Operations read and plan everything before their first write. The
// parameter file is written once, atomically; log truncation follows and is
// safe to repeat if interrupted.
package restart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fentz26/dnsrun/internal/connectors"
	"github.com/fentz26/dnsrun/internal/logging"
	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/fentz26/dnsrun/internal/timeseries"
)

// Options are the run-directory conventions the engine follows.
type Options struct {
	PrimaryLog    string
	LogPattern    string
	ScriptPattern string
	ContinueDir   string
	Schemas       timeseries.Schemas
}

// DefaultOptions returns the solver's own layout.
func DefaultOptions() Options {
	return Options{
		PrimaryLog:    timeseries.StatLog,
		LogPattern:    "*.gp",
		ScriptPattern: "*.slurm",
		ContinueDir:   "continue",
		Schemas:       timeseries.DefaultSchemas(),
	}
}

// Engine plans and applies restart operations.
type Engine struct {
	fs        rundir.FS
	params    ParameterStore
	opts      Options
	submitter connectors.Submitter
	logger    *slog.Logger
}

// New creates an engine.
func New(fs rundir.FS, params ParameterStore, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{fs: fs, params: params, opts: opts, logger: logger}
}

// SetSubmitter wires the job submitter used by Continue.
func (e *Engine) SetSubmitter(s connectors.Submitter) {
	e.submitter = s
}

// openRun returns the run directory at path, which must exist.
func (e *Engine) openRun(path string) (rundir.Dir, error) {
	d := e.fs.Dir(path)
	if !d.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRunDirectory)
	}
	return d, nil
}

// selectSnapshot scans d and picks the resumption snapshot.
func (e *Engine) selectSnapshot(d rundir.Dir) (rundir.Snapshot, error) {
	snaps, err := rundir.Scan(d)
	if err != nil {
		return rundir.Snapshot{}, err
	}
	snap, err := rundir.SelectResumption(snaps)
	if err != nil {
		return rundir.Snapshot{}, err
	}
	e.logger.Debug("selected resumption snapshot",
		logging.RunDirKey, d.Root(),
		logging.SnapshotKey, snap.Name,
		"available", len(snaps))
	return snap, nil
}

// checkDestination refuses to reuse an existing directory unless force is set.
func checkDestination(dest rundir.Dir, force bool) error {
	if dest.IsDir() && !force {
		return fmt.Errorf("%s: %w", dest.Root(), ErrDestinationExists)
	}
	return nil
}

// prepareDestination creates dest, tolerating an existing one under force.
func prepareDestination(dest rundir.Dir, force bool) error {
	if force && dest.IsDir() {
		return nil
	}
	if err := dest.Mkdir(); err != nil {
		if errors.Is(err, rundir.ErrExist) {
			return fmt.Errorf("%s: %w", dest.Root(), ErrDestinationExists)
		}
		return err
	}
	return nil
}

// copyRunFiles copies snap into dest as state.000000 along with every job
// script of src. It returns the names written.
func (e *Engine) copyRunFiles(src rundir.Dir, snap rundir.Snapshot, dest rundir.Dir) ([]string, error) {
	target := rundir.SnapshotName(0)
	if err := rundir.CopyFile(src, snap.Name, dest, target); err != nil {
		return nil, fmt.Errorf("copy snapshot: %w", err)
	}
	e.logger.Info("copied snapshot",
		logging.SnapshotKey, snap.Name,
		"to", filepath.Join(dest.Root(), target))
	copied := []string{target}

	scripts, err := src.List(e.opts.ScriptPattern)
	if err != nil {
		return copied, err
	}
	for _, name := range scripts {
		if err := rundir.CopyFile(src, name, dest, name); err != nil {
			return copied, fmt.Errorf("copy job script: %w", err)
		}
		copied = append(copied, name)
	}
	return copied, nil
}

// submit hands script to the scheduler. Failures are reported as warnings;
// the restart itself has already been committed.
func (e *Engine) submit(ctx context.Context, script string, dest rundir.Dir, plan *Plan) {
	if script == "" {
		return
	}
	if e.submitter == nil {
		plan.warn("no job submitter configured; %s was not submitted", script)
		return
	}
	sub, err := e.submitter.Submit(ctx, script, dest.Root())
	if err != nil {
		e.logger.Warn("job submission failed", "script", script, "error", err)
		plan.warn("job submission failed: %v", err)
		return
	}
	e.logger.Info("submitted job", "script", script, "pid", sub.PID)
	plan.Submission = sub
}
