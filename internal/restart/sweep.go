package restart

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/fentz26/dnsrun/internal/logging"
	"github.com/fentz26/dnsrun/internal/rundir"
)

// SweepRequest fans a base run out over a range of Reynolds numbers.
type SweepRequest struct {
	ParentDir string
	Start     float64
	End       float64
	Step      float64
}

// SweepRun is one directory created by a sweep.
type SweepRun struct {
	Re  float64 `json:"re"`
	Dir string  `json:"dir"`
}

// SweepResult lists the directories a sweep created.
type SweepResult struct {
	ParentDir string     `json:"parent_dir"`
	Runs      []SweepRun `json:"runs"`
}

// SweepValues returns start, start+step, ... strictly below end.
func SweepValues(start, end, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step must be positive, got %g", ErrInvalidSweep, step)
	}
	n := int(math.Ceil((end - start) / step))
	if n <= 0 {
		return nil, fmt.Errorf("%w: no values in [%g, %g)", ErrInvalidSweep, start, end)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return values, nil
}

// SweepDirName is the directory name of the run at Reynolds number re.
func SweepDirName(re float64) string {
	return fmt.Sprintf("re%.2f", re)
}

// Sweep creates one run directory per value under ParentDir, each seeded
// with the parent's initial condition and job scripts and with its counters
// at zero. Every name is checked before the first directory is made.
func (e *Engine) Sweep(req SweepRequest) (*SweepResult, error) {
	parent, err := e.openRun(req.ParentDir)
	if err != nil {
		return nil, err
	}
	values, err := SweepValues(req.Start, req.End, req.Step)
	if err != nil {
		return nil, err
	}
	seed := rundir.Snapshot{Index: 0, Name: rundir.SnapshotName(0)}
	if !parent.Exists(seed.Name) {
		return nil, fmt.Errorf("%s: initial condition %s: %w", parent.Root(), seed.Name, ErrNoSnapshots)
	}
	doc, err := e.params.Load(parent)
	if err != nil {
		return nil, err
	}
	setStart(doc, 0, 0, 0)

	dests := make([]rundir.Dir, len(values))
	seen := make(map[string]bool, len(values))
	for i, re := range values {
		name := SweepDirName(re)
		if seen[name] {
			return nil, fmt.Errorf("%w: step %g repeats directory %s", ErrInvalidSweep, req.Step, name)
		}
		seen[name] = true
		dests[i] = e.fs.Dir(filepath.Join(parent.Root(), name))
		if err := checkDestination(dests[i], false); err != nil {
			return nil, err
		}
	}

	res := &SweepResult{ParentDir: parent.Root()}
	for i, re := range values {
		dest := dests[i]
		if err := dest.Mkdir(); err != nil {
			return res, fmt.Errorf("create %s: %w", dest.Root(), err)
		}
		if _, err := e.copyRunFiles(parent, seed, dest); err != nil {
			return res, err
		}
		run := doc.Clone()
		run.SetFloat(groupPhysics, keyRe, re)
		if err := e.params.Save(dest, run); err != nil {
			return res, err
		}
		e.logger.Info("created sweep run", logging.RunDirKey, dest.Root(), "re", re)
		res.Runs = append(res.Runs, SweepRun{Re: re, Dir: dest.Root()})
	}
	return res, nil
}
