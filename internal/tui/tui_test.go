package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/fentz26/dnsrun/internal/timeseries"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"y", true},
		{"Y", true},
		{"n", false},
		{"esc", false},
		{"enter", false},
		{"q", false},
		{"ctrl+c", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewConfirm("delete?", []string{"state.000000"})
			_, cmd := m.Update(keyPress(tt.key))

			assert.True(t, m.Done())
			assert.Equal(t, tt.want, m.Confirmed())
			assert.NotNil(t, cmd)
		})
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m := NewConfirm("delete?", []string{"state.000000"})
	_, cmd := m.Update(keyPress("x"))

	assert.False(t, m.Done())
	assert.False(t, m.Confirmed())
	assert.Nil(t, cmd)
}

func TestConfirmViewSummarizesLongLists(t *testing.T) {
	var items []string
	for i := 0; i < maxListed+3; i++ {
		items = append(items, rundir.SnapshotName(i))
	}
	view := NewConfirm("delete 15 snapshots?", items).View()

	assert.Contains(t, view, "state.000000")
	assert.Contains(t, view, rundir.SnapshotName(maxListed-1))
	assert.NotContains(t, view, rundir.SnapshotName(maxListed))
	assert.Contains(t, view, "and 3 more")
}

func TestRenderPlanShowsFallbackWarning(t *testing.T) {
	out := RenderPlan(&restart.Plan{
		Kind:       "continue",
		RunDir:     "/runs/a",
		Snapshot:   rundir.Snapshot{Index: 4, Name: "state.000004"},
		Step:       400,
		Time:       4,
		TimeSource: timeseries.TimeFromStep,
		IC:         4,
		IStart:     400,
		TStart:     4,
		Logs:       []timeseries.FileResult{{Name: "stat.gp", Stats: timeseries.Stats{Kept: 3, Dropped: 2}, Rewritten: true}},
		Warnings:   []string{"no primary log row at step 400"},
	})

	assert.Contains(t, out, "state.000004")
	assert.Contains(t, out, "4 (fallback)")
	assert.Contains(t, out, "stat.gp: kept 3, dropped 2")
	assert.Contains(t, out, "no primary log row at step 400")
	assert.NotContains(t, out, "destination")
}

func TestRenderPrune(t *testing.T) {
	out := RenderPrune(&restart.PruneResult{
		RunDir:   "/runs/a",
		Retained: 2,
		Deleted:  []string{"state.000000", "state.000001"},
		Kept:     []string{"state.000002"},
		DryRun:   true,
	})

	assert.Contains(t, out, "dry run")
	assert.Equal(t, 2, strings.Count(out, "would delete"))
	assert.Contains(t, out, "1 snapshot(s) kept")
}

func TestRenderReportMarksAbsentLogs(t *testing.T) {
	out := RenderReport(&restart.Report{
		RunDir:         "/runs/a",
		ResumptionStep: -1,
		Physics:        &restart.Physics{Re: 3000},
		Logs: []restart.LogReport{
			{Name: "stat.gp", Present: true, Summary: &timeseries.Summary{Rows: 3, DataRows: 2, FirstStep: 0, LastStep: 100, LastTime: 1, HasTime: true}},
			{Name: "stat_mhd.gp"},
		},
	})

	assert.Contains(t, out, "steps 0–100")
	assert.Contains(t, out, "absent")
	assert.Contains(t, out, "off (default)")
	assert.Contains(t, out, "unset")
}
