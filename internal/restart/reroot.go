package restart

import (
	"context"
	"path/filepath"

	"github.com/fentz26/dnsrun/internal/models"
)

// RerootRequest asks to copy a run's resumption point under another root.
type RerootRequest struct {
	RunDir  string
	NewRoot string
	// Script, when set, is submitted from the new directory.
	Script           string
	ExtraFinishSteps *int64
	DisableDamping   bool
	Force            bool
	DryRun           bool
}

// Reroot starts a fresh copy of a run at NewRoot/<basename of RunDir>. The
// source directory is only read.
func (e *Engine) Reroot(ctx context.Context, req RerootRequest) (*Plan, error) {
	src, err := e.openRun(req.RunDir)
	if err != nil {
		return nil, err
	}
	dest := e.fs.Dir(filepath.Join(req.NewRoot, filepath.Base(src.Root())))
	if err := checkDestination(dest, req.Force); err != nil {
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

	planned, plan, err := PlanFreshDirectory(doc, snap, req.ExtraFinishSteps, req.DisableDamping)
	if err != nil {
		return nil, err
	}
	plan.Kind = models.OperationReroot
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
