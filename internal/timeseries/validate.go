package timeseries

import (
	"fmt"

	"github.com/fentz26/dnsrun/internal/rundir"
)

// Violation is a data row whose step goes backwards.
type Violation struct {
	Line     int   `json:"line"`
	Step     int64 `json:"step"`
	Previous int64 `json:"previous"`
}

func (v Violation) String() string {
	return fmt.Sprintf("line %d: step %d after step %d", v.Line, v.Step, v.Previous)
}

// Validate reports every data row whose step is lower than the data row
// before it. A truncation at any cutoff would discard such rows.
func Validate(data []byte, schema Schema) []Violation {
	var (
		violations []Violation
		prev       int64
		seen       bool
	)
	for _, row := range ParseRows(data, schema) {
		if row.Kind != RowData {
			continue
		}
		if seen && row.Step < prev {
			violations = append(violations, Violation{Line: row.Line, Step: row.Step, Previous: prev})
		}
		prev = row.Step
		seen = true
	}
	return violations
}

// FileViolations groups the violations found in one log.
type FileViolations struct {
	Name       string      `json:"name"`
	Violations []Violation `json:"violations"`
}

// ValidateAll checks every log in d matching pattern.
func ValidateAll(d rundir.Dir, pattern string, schemas Schemas) ([]FileViolations, error) {
	names, err := d.List(pattern)
	if err != nil {
		return nil, err
	}

	var out []FileViolations
	for _, name := range names {
		data, err := rundir.ReadFile(d, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if v := Validate(data, schemas.For(name)); len(v) > 0 {
			out = append(out, FileViolations{Name: name, Violations: v})
		}
	}
	return out, nil
}
