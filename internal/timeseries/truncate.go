package timeseries

import (
	"fmt"
	"strings"

	"github.com/fentz26/dnsrun/internal/rundir"
)

// Stats counts the rows kept and dropped by a truncation.
type Stats struct {
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// FileResult is the outcome of truncating one log.
type FileResult struct {
	Name string `json:"name"`
	Stats
	Rewritten bool `json:"rewritten"`
}

// Truncate cuts a log's history at cutoff. Data rows are kept up to the
// first row whose step exceeds cutoff; that row and every data row after it
// are dropped, even ones with a smaller step. Non-numeric rows are always
// kept in place.
func Truncate(data []byte, schema Schema, cutoff int64) ([]byte, Stats) {
	var (
		out   strings.Builder
		stats Stats
		ended bool
	)
	out.Grow(len(data))

	for _, row := range ParseRows(data, schema) {
		if row.Kind == RowData {
			if ended || row.Step > cutoff {
				ended = true
				stats.Dropped++
				continue
			}
		}
		out.WriteString(row.Text)
		stats.Kept++
	}
	return []byte(out.String()), stats
}

// TruncateAll truncates every log in d matching pattern at cutoff. Files
// with nothing to drop are left untouched. On error the logs already
// processed stay truncated; rerunning with the same cutoff is safe.
func TruncateAll(d rundir.Dir, pattern string, schemas Schemas, cutoff int64) ([]FileResult, error) {
	names, err := d.List(pattern)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(names))
	for _, name := range names {
		data, err := rundir.ReadFile(d, name)
		if err != nil {
			return results, fmt.Errorf("read %s: %w", name, err)
		}

		truncated, stats := Truncate(data, schemas.For(name), cutoff)
		result := FileResult{Name: name, Stats: stats}
		if stats.Dropped > 0 {
			if err := rundir.WriteFile(d, name, truncated); err != nil {
				return results, fmt.Errorf("rewrite %s: %w", name, err)
			}
			result.Rewritten = true
		}
		results = append(results, result)
	}
	return results, nil
}

// Preview computes what TruncateAll would do without writing.
func Preview(d rundir.Dir, pattern string, schemas Schemas, cutoff int64) ([]FileResult, error) {
	names, err := d.List(pattern)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(names))
	for _, name := range names {
		data, err := rundir.ReadFile(d, name)
		if err != nil {
			return results, fmt.Errorf("read %s: %w", name, err)
		}
		_, stats := Truncate(data, schemas.For(name), cutoff)
		results = append(results, FileResult{Name: name, Stats: stats, Rewritten: stats.Dropped > 0})
	}
	return results, nil
}
