package main

import (
	"path/filepath"

	"github.com/fentz26/dnsrun/internal/audit"
	"github.com/fentz26/dnsrun/internal/logging"
	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/store"
)

// journal records mutating operations. A journal that cannot be opened or
// written is logged and otherwise ignored.
type journal struct {
	store *store.Store
	pdr   *audit.Recorder
}

func openJournal() *journal {
	if cfg.Journal == "" {
		return &journal{}
	}
	s, err := store.New(cfg.Journal)
	if err != nil {
		logger.Warn("operation journal unavailable", "path", cfg.Journal, "error", err)
		return &journal{}
	}
	return &journal{store: s, pdr: audit.NewRecorder(s)}
}

func (j *journal) Close() {
	if j.store != nil {
		j.store.Close()
	}
}

// start records a running operation. A request identical to an earlier
// successful one is logged, since rerunning it is harmless but often
// unintended.
func (j *journal) start(kind models.OperationKind, runDir string, request interface{}) *models.Operation {
	if j.store == nil {
		return nil
	}
	if prev, err := j.pdr.Repeats(kind, request); err == nil && len(prev) > 0 {
		logger.Info("identical request already succeeded",
			logging.RunDirKey, runDir,
			logging.OperationIDKey, prev[0].OperationID,
			"at", prev[0].Timestamp)
	}
	op, err := j.store.StartOperation(kind, absPath(runDir), "")
	if err != nil {
		logger.Warn("journal start failed", "error", err)
		return nil
	}
	return op
}

// finish records the outcome of op together with a decision record hashing
// the request that produced it.
func (j *journal) finish(op *models.Operation, request interface{}, opErr error) {
	if j.store == nil || op == nil {
		return
	}
	op.Outcome = models.OutcomeSucceeded
	if opErr != nil {
		op.Outcome = models.OutcomeFailed
		op.Details = opErr.Error()
	}
	if err := j.store.FinishOperation(op); err != nil {
		logger.Warn("journal finish failed", logging.OperationIDKey, op.ID, "error", err)
	}
	if _, err := j.pdr.Record(op, request); err != nil {
		logger.Warn("journal decision record failed", logging.OperationIDKey, op.ID, "error", err)
	}
	logger.Debug("operation recorded", logging.OperationIDKey, op.ID, "outcome", op.Outcome)
}

// fromPlan copies a plan's resumption point onto op.
func fromPlan(op *models.Operation, plan *restart.Plan) {
	if op == nil || plan == nil {
		return
	}
	op.Destination = absPath(plan.Destination)
	op.Snapshot = plan.Snapshot.Index
	op.IStart = plan.IStart
	op.TStart = plan.TStart
	op.TimeSource = string(plan.TimeSource)
	if len(plan.Warnings) > 0 {
		op.Details = plan.Warnings[0]
	}
}

// absPath keys the journal by absolute path so history can filter by it.
func absPath(p string) string {
	if p == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
