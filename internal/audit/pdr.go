// Package audit keeps process decision records (PDRs) for journaled
// operations. A PDR ties an operation's outcome to a hash of the request it
// was planned from, so a repeated request can be recognised later.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/fentz26/dnsrun/internal/models"
	"github.com/fentz26/dnsrun/internal/store"
)

// Recorder writes and queries decision records.
type Recorder struct {
	store *store.Store
}

// NewRecorder creates a recorder backed by s.
func NewRecorder(s *store.Store) *Recorder {
	return &Recorder{store: s}
}

// Record stores the decision record of a finished operation.
func (r *Recorder) Record(op *models.Operation, request interface{}) (*models.PDREntry, error) {
	return r.store.WritePDR(string(op.Kind), HashInputs(request), string(op.Outcome), op.ID, op.Details)
}

// Repeats returns earlier successful operations of kind planned from an
// identical request, newest first.
func (r *Recorder) Repeats(kind models.OperationKind, request interface{}) ([]models.PDREntry, error) {
	return r.store.FindPDRs(string(kind), HashInputs(request), string(models.OutcomeSucceeded))
}

// HashInputs is the hex SHA-256 of the JSON encoding of inputs.
func HashInputs(inputs interface{}) string {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "hash_error"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
