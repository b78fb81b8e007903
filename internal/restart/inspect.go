package restart

import (
	"errors"
	"fmt"

	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/fentz26/dnsrun/internal/timeseries"
)

// LogReport describes one diagnostic log of a run.
type LogReport struct {
	Name    string              `json:"name"`
	Present bool                `json:"present"`
	Summary *timeseries.Summary `json:"summary,omitempty"`
}

// Report is a read-only view of a run directory.
type Report struct {
	RunDir     string           `json:"run_dir"`
	Snapshots  []string         `json:"snapshots"`
	Resumption *rundir.Snapshot `json:"resumption,omitempty"`

	// ResumptionStep is -1 when i_save_fields is missing or invalid.
	ResumptionStep int64 `json:"resumption_step"`

	IStart     Option[int64]   `json:"-"`
	IFinish    Option[int64]   `json:"-"`
	SaveFields Option[int64]   `json:"-"`
	Dt         Option[float64] `json:"-"`
	Physics    *Physics        `json:"-"`

	Logs     []LogReport `json:"logs"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Inspect reports the snapshots, resumption point, parameters and logs of a
// run without changing anything. Missing pieces are reported, not failed on.
func (e *Engine) Inspect(runDir string) (*Report, error) {
	d, err := e.openRun(runDir)
	if err != nil {
		return nil, err
	}
	rep := &Report{RunDir: d.Root(), Snapshots: []string{}, ResumptionStep: -1}

	snaps, err := rundir.Scan(d)
	switch {
	case errors.Is(err, rundir.ErrNoSnapshots):
		rep.Warnings = append(rep.Warnings, "no snapshots")
	case err != nil:
		return nil, err
	default:
		for _, s := range snaps {
			rep.Snapshots = append(rep.Snapshots, s.Name)
		}
		snap, _ := rundir.SelectResumption(snaps)
		rep.Resumption = &snap
	}

	doc, err := e.params.Load(d)
	if err != nil {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("parameters: %v", err))
	} else {
		if rep.IStart, err = optionalInt(doc, groupInitiation, keyIStart); err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
		}
		if rep.IFinish, err = optionalInt(doc, groupTermination, keyIFinish); err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
		}
		if rep.SaveFields, err = optionalInt(doc, groupOutput, keySaveFields); err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
		}
		if rep.Dt, err = optionalFloat(doc, groupTimeStepping, keyDt); err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
		}
		if p, err := ReadPhysics(doc); err != nil {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("physics: %v", err))
		} else {
			rep.Physics = &p
		}
		if rep.Resumption != nil {
			if step, err := ResumptionStep(doc, *rep.Resumption); err == nil {
				rep.ResumptionStep = step
			}
		}
	}

	names, err := e.logNames(d)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		lr := LogReport{Name: name, Present: d.Exists(name)}
		if lr.Present {
			data, err := rundir.ReadFile(d, name)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			s := timeseries.Summarize(data, e.opts.Schemas.For(name))
			lr.Summary = &s
		}
		rep.Logs = append(rep.Logs, lr)
	}
	return rep, nil
}

// logNames lists the known log kinds followed by any other log in d.
func (e *Engine) logNames(d rundir.Dir) ([]string, error) {
	names := timeseries.KnownLogs()
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	found, err := d.List(e.opts.LogPattern)
	if err != nil {
		return nil, err
	}
	for _, n := range found {
		if !known[n] {
			names = append(names, n)
		}
	}
	return names, nil
}
