// Package timeseries reads and rewrites the whitespace-separated diagnostic
// logs (*.gp) a DNS run appends to while it integrates.
//
// Every log has a fixed schema naming the zero-based column that holds the
// integer step and the column that holds the simulation time. Rows whose step
// column is missing or not an integer (headers, comments, blank or damaged
// lines) are non-numeric rows: they are carried through every rewrite
// untouched.
//
// Data rows are assumed to be non-decreasing in step. Truncation relies on
// that: the first row past the cutoff ends the valid history. Validate reports
// files that break the assumption.
package timeseries

import "sort"

// Log file names written by the solver.
const (
	StatLog  = "stat.gp"
	StepsLog = "steps.gp"
	MHDLog   = "stat_mhd.gp"
	RayLog   = "stat_ray.gp"
	FracLog  = "stat_frac.gp"
	PhaseLog = "phases.gp"
)

// Schema locates the step and time columns of a log.
type Schema struct {
	StepColumn int `yaml:"step_column" json:"step_column"`
	TimeColumn int `yaml:"time_column" json:"time_column"`
}

// DefaultSchema is the layout shared by every log the solver writes.
var DefaultSchema = Schema{StepColumn: 0, TimeColumn: 1}

// Schemas maps log file names to their layout.
type Schemas struct {
	Files   map[string]Schema
	Default Schema
}

// DefaultSchemas returns the layouts of the known log kinds.
func DefaultSchemas() Schemas {
	files := make(map[string]Schema)
	for _, name := range KnownLogs() {
		files[name] = DefaultSchema
	}
	return Schemas{Files: files, Default: DefaultSchema}
}

// For returns the schema of the named log, falling back to Default.
func (s Schemas) For(name string) Schema {
	if schema, ok := s.Files[name]; ok {
		return schema
	}
	return s.Default
}

// KnownLogs lists the log kinds a run may produce. Only stat.gp is always
// written; the others depend on the physics enabled for the run.
func KnownLogs() []string {
	names := []string{StatLog, StepsLog, MHDLog, RayLog, FracLog, PhaseLog}
	sort.Strings(names)
	return names
}
