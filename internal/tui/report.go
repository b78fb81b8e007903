package tui

import (
	"fmt"
	"strings"

	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/timeseries"
)

func fmtValue(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%g", v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func optional[T any](o restart.Option[T], def string) string {
	if v, ok := o.Get(); ok {
		return fmtValue(v)
	}
	return def
}

// RenderPlan renders a continuation or reroot.
func RenderPlan(p *restart.Plan) string {
	var b strings.Builder
	heading := string(p.Kind)
	if p.DryRun {
		heading += " (dry run)"
	}
	b.WriteString(Title(heading) + "\n")
	b.WriteString(Field("run", p.RunDir) + "\n")
	if p.Destination != p.RunDir {
		b.WriteString(Field("destination", p.Destination) + "\n")
	}
	b.WriteString(Field("snapshot", p.Snapshot.Name) + "\n")
	if p.Step >= 0 {
		b.WriteString(Field("step", p.Step) + "\n")
	}
	if p.TimeSource != "" {
		b.WriteString(Field("time", fmt.Sprintf("%g (%s)", p.Time, p.TimeSource)) + "\n")
	}
	b.WriteString(Field("ic", p.IC) + "\n")
	b.WriteString(Field("i_start", p.IStart) + "\n")
	b.WriteString(Field("t_start", p.TStart) + "\n")
	if p.IFinish != nil {
		b.WriteString(Field("i_finish", *p.IFinish) + "\n")
	}
	if p.DampingDisabled {
		b.WriteString(Field("sigma_r", ".false.") + "\n")
	}

	for _, l := range p.Logs {
		line := fmt.Sprintf("%s: kept %d, dropped %d", l.Name, l.Kept, l.Dropped)
		if l.Dropped == 0 {
			b.WriteString(Muted("  "+line) + "\n")
		} else {
			b.WriteString(deleteStyle.Render("  "+line) + "\n")
		}
	}
	for _, name := range p.Copied {
		b.WriteString(Muted("  copied "+name) + "\n")
	}
	if p.Submission != nil {
		b.WriteString(Success(fmt.Sprintf("submitted %s %s (pid %d)", p.Submission.Command, strings.Join(p.Submission.Args, " "), p.Submission.PID)) + "\n")
	}
	for _, w := range p.Warnings {
		b.WriteString(Warning(w) + "\n")
	}
	return b.String()
}

// RenderPrune renders a prune result.
func RenderPrune(r *restart.PruneResult) string {
	var b strings.Builder
	heading := "prune"
	if r.DryRun {
		heading += " (dry run)"
	}
	b.WriteString(Title(heading) + "\n")
	b.WriteString(Field("run", r.RunDir) + "\n")
	b.WriteString(Field("i_start", r.IStart) + "\n")
	b.WriteString(Field("retained index", r.Retained) + "\n")

	verb := "deleted"
	if r.DryRun {
		verb = "would delete"
	}
	if len(r.Deleted) == 0 {
		b.WriteString(Muted("nothing to delete") + "\n")
	}
	for _, name := range r.Deleted {
		b.WriteString(deleteStyle.Render(fmt.Sprintf("  %s %s", verb, name)) + "\n")
	}
	b.WriteString(Muted(fmt.Sprintf("  %d snapshot(s) kept", len(r.Kept))) + "\n")
	for _, w := range r.Warnings {
		b.WriteString(Warning(w) + "\n")
	}
	return b.String()
}

// RenderSweep renders the directories a sweep created.
func RenderSweep(r *restart.SweepResult) string {
	var b strings.Builder
	b.WriteString(Title("sweep") + "\n")
	for _, run := range r.Runs {
		b.WriteString(Field(fmt.Sprintf("re = %.2f", run.Re), run.Dir) + "\n")
	}
	return b.String()
}

// RenderReport renders an inspect report.
func RenderReport(r *restart.Report) string {
	var b strings.Builder
	b.WriteString(Title(r.RunDir) + "\n")

	b.WriteString(Field("snapshots", len(r.Snapshots)) + "\n")
	if n := len(r.Snapshots); n > 0 {
		b.WriteString(Field("range", r.Snapshots[0]+" … "+r.Snapshots[n-1]) + "\n")
	}
	if r.Resumption != nil {
		resume := r.Resumption.Name
		if r.ResumptionStep >= 0 {
			resume += fmt.Sprintf(" (step %d)", r.ResumptionStep)
		}
		b.WriteString(Field("resumes from", resume) + "\n")
	}

	b.WriteString("\n" + Title("parameters") + "\n")
	b.WriteString(Field("i_start", optional(r.IStart, "unset")) + "\n")
	b.WriteString(Field("i_finish", optional(r.IFinish, "unset")) + "\n")
	b.WriteString(Field("i_save_fields", optional(r.SaveFields, "unset")) + "\n")
	b.WriteString(Field("dt", optional(r.Dt, "unset")) + "\n")
	if p := r.Physics; p != nil {
		b.WriteString(Field("re", p.Re) + "\n")
		b.WriteString(Field("ha", optional(p.Ha, "0 (default)")) + "\n")
		b.WriteString(Field("tilt_angle", optional(p.TiltAngle, "0 (default)")) + "\n")
		damping := "off (default)"
		if d, ok := p.Damping.Get(); ok {
			switch {
			case !d.Enabled:
				damping = "off"
			case d.Sigma != 0:
				damping = fmt.Sprintf("on, sigma_r = %g", d.Sigma)
			default:
				damping = "on"
			}
		}
		b.WriteString(Field("damping", damping) + "\n")
	}

	b.WriteString("\n" + Title("logs") + "\n")
	for _, l := range r.Logs {
		b.WriteString(renderLog(l) + "\n")
	}
	for _, w := range r.Warnings {
		b.WriteString(Warning(w) + "\n")
	}
	return b.String()
}

func renderLog(l restart.LogReport) string {
	if !l.Present || l.Summary == nil {
		return labelStyle.Render(l.Name) + Muted("absent")
	}
	s := l.Summary
	if s.DataRows == 0 {
		return Field(l.Name, fmt.Sprintf("%d rows, no data", s.Rows))
	}
	line := fmt.Sprintf("%d rows, steps %d–%d", s.DataRows, s.FirstStep, s.LastStep)
	if s.HasTime {
		line += fmt.Sprintf(", t = %g", s.LastTime)
	}
	out := Field(l.Name, line)
	if s.OutOfOrder > 0 {
		out += " " + Warning(fmt.Sprintf("%d out of order", s.OutOfOrder))
	}
	return out
}

// RenderViolations renders the out-of-order rows of each log.
func RenderViolations(results []timeseries.FileViolations) string {
	var b strings.Builder
	for _, r := range results {
		if len(r.Violations) == 0 {
			b.WriteString(Success(r.Name) + "\n")
			continue
		}
		b.WriteString(Warning(fmt.Sprintf("%s: %d out-of-order row(s)", r.Name, len(r.Violations))) + "\n")
		for _, v := range r.Violations {
			b.WriteString(Muted("    "+v.String()) + "\n")
		}
	}
	return b.String()
}
