// Package connectors defines how dnsrun hands job scripts to a scheduler.
package connectors

import "context"

// Submission describes a started submission. The scheduler command runs on
// after Submit returns and its exit status is never collected.
type Submission struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Dir     string   `json:"dir"`
	PID     int      `json:"pid"`
}

// Submitter starts a job submission for a script.
type Submitter interface {
	// Name returns the connector identifier.
	Name() string

	// Submit starts the scheduler command for script with dir as working
	// directory and returns without waiting for it.
	Submit(ctx context.Context, script, dir string) (*Submission, error)

	// IsAllowed checks if a command is allowed to execute.
	IsAllowed(cmd string) bool
}
