package restart

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fentz26/dnsrun/internal/connectors"
	"github.com/fentz26/dnsrun/internal/logging"
	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/namelist"
	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/fentz26/dnsrun/internal/timeseries"
)

// Plan describes a continuation or reroot, applied or not.
type Plan struct {
	Kind        models.OperationKind `json:"kind"`
	RunDir      string               `json:"run_dir"`
	Destination string               `json:"destination"`
	Snapshot    rundir.Snapshot      `json:"snapshot"`

	// Step and Time locate the snapshot in the source run's history.
	// Step is -1 when the source lacks a usable i_save_fields.
	Step       int64                 `json:"step"`
	Time       float64               `json:"time"`
	TimeSource timeseries.TimeSource `json:"time_source,omitempty"`

	// IC, IStart and TStart are the values written to the parameter file.
	IC      int64   `json:"ic"`
	IStart  int64   `json:"i_start"`
	TStart  float64 `json:"t_start"`
	IFinish *int64  `json:"i_finish,omitempty"`

	DampingDisabled bool                    `json:"damping_disabled"`
	Logs            []timeseries.FileResult `json:"logs,omitempty"`
	Copied          []string                `json:"copied,omitempty"`
	Submission      *connectors.Submission  `json:"submission,omitempty"`
	Warnings        []string                `json:"warnings,omitempty"`
	DryRun          bool                    `json:"dry_run"`
}

func (p *Plan) warn(format string, args ...interface{}) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// ContinueRequest asks to continue a run from its resumption snapshot.
type ContinueRequest struct {
	RunDir           string
	ExtraFinishSteps *int64
	DisableDamping   bool
	// Script, when set, is submitted after a successful continuation.
	Script string
	// NewDir continues into a fresh subdirectory instead of in place.
	NewDir bool
	// Force lets NewDir write into an existing subdirectory.
	Force  bool
	DryRun bool
}

// Continue continues a run either in place or into a fresh subdirectory.
func (e *Engine) Continue(ctx context.Context, req ContinueRequest) (*Plan, error) {
	src, err := e.openRun(req.RunDir)
	if err != nil {
		return nil, err
	}
	snap, err := e.selectSnapshot(src)
	if err != nil {
		return nil, err
	}
	doc, err := e.params.Load(src)
	if err != nil {
		return nil, err
	}

	if req.NewDir {
		return e.continueNewDir(ctx, req, src, snap, doc)
	}
	return e.continueInPlace(ctx, req, src, snap, doc)
}

// PlanInPlace derives the parameters that restart a run from snap in its
// own directory. primaryLog is nil when the run has no primary log.
func PlanInPlace(doc *namelist.Document, snap rundir.Snapshot, primaryLog []byte, schema timeseries.Schema, extraFinishSteps *int64, disableDamping bool) (*namelist.Document, *Plan, error) {
	out := doc.Clone()
	plan := &Plan{Kind: models.OperationContinue, Snapshot: snap, DampingDisabled: disableDamping}

	step, err := ResumptionStep(out, snap)
	if err != nil {
		return nil, nil, err
	}

	t, source := timeseries.ResolveTime(primaryLog, schema, step, 0)
	if source == timeseries.TimeFromStep {
		dt, err := out.Float(groupTimeStepping, keyDt)
		if err != nil {
			return nil, nil, fmt.Errorf("no logged time for step %d and %w", step, requiredParameter(err))
		}
		t = float64(step) * dt
		if primaryLog == nil {
			plan.warn("primary log absent; t_start estimated as step*dt = %d*%g = %g", step, dt, t)
		} else {
			plan.warn("no primary log row at step %d; t_start estimated as step*dt = %d*%g = %g", step, step, dt, t)
		}
	}

	setStart(out, int64(snap.Index), step, t)
	finish, err := adjust(out, extraFinishSteps, disableDamping)
	if err != nil {
		return nil, nil, err
	}

	plan.Step, plan.Time, plan.TimeSource = step, t, source
	plan.IC, plan.IStart, plan.TStart = int64(snap.Index), step, t
	if v, ok := finish.Get(); ok {
		plan.IFinish = &v
	}
	return out, plan, nil
}

// PlanFreshDirectory derives the parameters for a new directory seeded with
// snap. The new directory keeps its own counters, so ic, i_start and t_start
// are zero whatever snapshot it starts from.
func PlanFreshDirectory(doc *namelist.Document, snap rundir.Snapshot, extraFinishSteps *int64, disableDamping bool) (*namelist.Document, *Plan, error) {
	out := doc.Clone()
	plan := &Plan{Kind: models.OperationNewDir, Snapshot: snap, Step: -1, DampingDisabled: disableDamping}

	if step, err := ResumptionStep(out, snap); err == nil {
		plan.Step = step
	}

	setStart(out, 0, 0, 0)
	finish, err := adjust(out, extraFinishSteps, disableDamping)
	if err != nil {
		return nil, nil, err
	}
	if v, ok := finish.Get(); ok {
		plan.IFinish = &v
	}
	return out, plan, nil
}

func (e *Engine) continueInPlace(ctx context.Context, req ContinueRequest, src rundir.Dir, snap rundir.Snapshot, doc *namelist.Document) (*Plan, error) {
	var primary []byte
	if src.Exists(e.opts.PrimaryLog) {
		data, err := rundir.ReadFile(src, e.opts.PrimaryLog)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.opts.PrimaryLog, err)
		}
		primary = data
	} else {
		e.logger.Debug("primary log absent", logging.RunDirKey, src.Root(), logging.LogKey, e.opts.PrimaryLog)
	}

	planned, plan, err := PlanInPlace(doc, snap, primary, e.opts.Schemas.For(e.opts.PrimaryLog), req.ExtraFinishSteps, req.DisableDamping)
	if err != nil {
		return nil, err
	}
	plan.RunDir, plan.Destination, plan.DryRun = src.Root(), src.Root(), req.DryRun
	if plan.TimeSource == timeseries.TimeFromStep {
		e.logger.Warn("resumption time not found in primary log, using step*dt",
			logging.RunDirKey, src.Root(),
			logging.StepKey, plan.Step,
			"t_start", plan.TStart)
	}

	if req.DryRun {
		logs, err := timeseries.Preview(src, e.opts.LogPattern, e.opts.Schemas, plan.Step)
		if err != nil {
			return nil, err
		}
		plan.Logs = logs
		return plan, nil
	}

	if err := e.params.Save(src, planned); err != nil {
		return nil, err
	}
	e.logger.Info("parameters updated",
		logging.RunDirKey, src.Root(),
		logging.SnapshotKey, snap.Name,
		logging.StepKey, plan.Step,
		"t_start", plan.TStart)

	logs, err := timeseries.TruncateAll(src, e.opts.LogPattern, e.opts.Schemas, plan.Step)
	plan.Logs = logs
	if err != nil {
		return plan, fmt.Errorf("truncate logs (safe to rerun): %w", err)
	}
	for _, l := range logs {
		if l.Rewritten {
			e.logger.Info("truncated log", logging.LogKey, l.Name, "dropped", l.Dropped, logging.StepKey, plan.Step)
		}
	}

	e.submit(ctx, req.Script, src, plan)
	return plan, nil
}

func (e *Engine) continueNewDir(ctx context.Context, req ContinueRequest, src rundir.Dir, snap rundir.Snapshot, doc *namelist.Document) (*Plan, error) {
	dest := e.fs.Dir(filepath.Join(src.Root(), e.opts.ContinueDir))
	if err := checkDestination(dest, req.Force); err != nil {
		return nil, err
	}

	planned, plan, err := PlanFreshDirectory(doc, snap, req.ExtraFinishSteps, req.DisableDamping)
	if err != nil {
		return nil, err
	}
	plan.RunDir, plan.Destination, plan.DryRun = src.Root(), dest.Root(), req.DryRun
	if req.DryRun {
		return plan, nil
	}

	if err := e.writeDestination(src, snap, dest, planned, req.Force, plan); err != nil {
		return plan, err
	}
	e.submit(ctx, req.Script, dest, plan)
	return plan, nil
}

// writeDestination creates dest and fills it with the planned parameters,
// the snapshot and the job scripts.
func (e *Engine) writeDestination(src rundir.Dir, snap rundir.Snapshot, dest rundir.Dir, planned *namelist.Document, force bool, plan *Plan) error {
	if err := prepareDestination(dest, force); err != nil {
		return err
	}
	if err := e.params.Save(dest, planned); err != nil {
		return err
	}
	e.logger.Info("parameters written", logging.RunDirKey, dest.Root(), logging.SnapshotKey, snap.Name)

	copied, err := e.copyRunFiles(src, snap, dest)
	plan.Copied = copied
	return err
}
