// Package models defines the journal types for dnsrun.
package models

import "time"

// OperationKind names a mutating command.
type OperationKind string

const (
	OperationContinue OperationKind = "continue"
	OperationNewDir   OperationKind = "continue-newdir"
	OperationReroot   OperationKind = "reroot"
	OperationPrune    OperationKind = "prune"
	OperationSweep    OperationKind = "sweep"
)

// OperationOutcome is the final state of an operation.
type OperationOutcome string

const (
	OutcomeRunning   OperationOutcome = "running"
	OutcomeSucceeded OperationOutcome = "succeeded"
	OutcomeFailed    OperationOutcome = "failed"
)

// Operation is one recorded invocation against a run directory.
type Operation struct {
	ID          string           `json:"id"`
	Kind        OperationKind    `json:"kind"`
	RunDir      string           `json:"run_dir"`
	Destination string           `json:"destination,omitempty"`
	Snapshot    int              `json:"snapshot"`
	IStart      int64            `json:"i_start"`
	TStart      float64          `json:"t_start"`
	TimeSource  string           `json:"time_source,omitempty"`
	Outcome     OperationOutcome `json:"outcome"`
	Details     string           `json:"details,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	EndedAt     *time.Time       `json:"ended_at,omitempty"`
}

// PDREntry represents a Process Decision Record for audit.
type PDREntry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	InputsHash  string    `json:"inputs_hash"`
	Outcome     string    `json:"outcome"`
	OperationID string    `json:"operation_id,omitempty"`
	Details     string    `json:"details,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
