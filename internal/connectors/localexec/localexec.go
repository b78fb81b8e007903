// Package localexec submits job scripts by running a local scheduler command.
package localexec

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/fentz26/dnsrun/internal/connectors"
)

// allowedCommands defines the strict allowlist of scheduler commands.
var allowedCommands = map[string]bool{
	"sbatch": true,
	"qsub":   true,
	"bsub":   true,
}

// LocalExec implements the Submitter interface for a local scheduler CLI.
type LocalExec struct {
	command string
}

// New creates a new LocalExec submitter running command (e.g. sbatch).
func New(command string) *LocalExec {
	return &LocalExec{command: command}
}

// Name returns the connector identifier.
func (l *LocalExec) Name() string {
	return "localexec"
}

// IsAllowed checks if a command is in the allowlist.
func (l *LocalExec) IsAllowed(cmd string) bool {
	return allowedCommands[filepath.Base(cmd)]
}

// Submit starts `command script` in dir. The script path is made absolute
// first so it resolves against the caller's working directory.
func (l *LocalExec) Submit(ctx context.Context, script, dir string) (*connectors.Submission, error) {
	if !l.IsAllowed(l.command) {
		return nil, fmt.Errorf("command not allowed: %s", l.command)
	}

	abs, err := filepath.Abs(script)
	if err != nil {
		return nil, fmt.Errorf("resolve script: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Not bound to ctx: the submission must outlive this process.
	execCmd := exec.Command(l.command, abs)
	if dir != "" {
		execCmd.Dir = dir
	}
	if err := execCmd.Start(); err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}

	sub := &connectors.Submission{
		Command: l.command,
		Args:    []string{abs},
		Dir:     dir,
		PID:     execCmd.Process.Pid,
	}
	// Reap in the background; the outcome is not reported.
	go execCmd.Wait()

	return sub, nil
}
