package audit

import (
	"path/filepath"
	"testing"

	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/store"
)

func TestHashInputsIsStable(t *testing.T) {
	in := map[string]interface{}{"run_dir": "/runs/a", "snapshot": 4}
	if HashInputs(in) != HashInputs(in) {
		t.Error("hash should be deterministic")
	}
	if HashInputs(in) == HashInputs(map[string]interface{}{"run_dir": "/runs/a", "snapshot": 5}) {
		t.Error("different inputs should hash differently")
	}
	if HashInputs(func() {}) != "hash_error" {
		t.Error("unmarshalable inputs should report hash_error")
	}
}

func newRecorder(t *testing.T) (*store.Store, *Recorder) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, NewRecorder(s)
}

func TestRecord(t *testing.T) {
	s, r := newRecorder(t)

	op, err := s.StartOperation(models.OperationPrune, "/runs/a", "")
	if err != nil {
		t.Fatalf("StartOperation failed: %v", err)
	}
	op.Outcome = models.OutcomeSucceeded
	op.Details = "deleted 4 snapshot(s)"

	entry, err := r.Record(op, map[string]string{"run_dir": "/runs/a"})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if entry.Action != "prune" || entry.OperationID != op.ID {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.InputsHash != HashInputs(map[string]string{"run_dir": "/runs/a"}) {
		t.Errorf("unexpected hash %s", entry.InputsHash)
	}
}

func TestRepeats(t *testing.T) {
	s, r := newRecorder(t)
	request := map[string]string{"run_dir": "/runs/a"}

	for _, outcome := range []models.OperationOutcome{models.OutcomeFailed, models.OutcomeSucceeded} {
		op, err := s.StartOperation(models.OperationContinue, "/runs/a", "")
		if err != nil {
			t.Fatalf("StartOperation failed: %v", err)
		}
		op.Outcome = outcome
		if _, err := r.Record(op, request); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	repeats, err := r.Repeats(models.OperationContinue, request)
	if err != nil {
		t.Fatalf("Repeats failed: %v", err)
	}
	if len(repeats) != 1 {
		t.Fatalf("expected 1 successful repeat, got %d", len(repeats))
	}

	other, err := r.Repeats(models.OperationContinue, map[string]string{"run_dir": "/runs/b"})
	if err != nil {
		t.Fatalf("Repeats failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no repeats for another run, got %d", len(other))
	}
}
