package restart

import (
	"errors"

	"github.com/fentz26/dnsrun/internal/rundir"
)

// Sentinel errors for restart operations.
var (
	ErrNoSnapshots         = rundir.ErrNoSnapshots
	ErrNotRunDirectory     = errors.New("not a run directory")
	ErrDestinationExists   = errors.New("destination already exists")
	ErrInvalidSaveInterval = errors.New("output.i_save_fields must be positive")
	ErrMissingParameter    = errors.New("required parameter missing")
	ErrInvalidSweep        = errors.New("invalid sweep range")
)
