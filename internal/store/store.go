// Package store provides the SQLite-backed operation journal for dnsrun.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fentz26/dnsrun/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store provides access to the journal database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer at a time
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		run_dir TEXT NOT NULL,
		destination TEXT,
		snapshot INTEGER NOT NULL DEFAULT 0,
		i_start INTEGER NOT NULL DEFAULT 0,
		t_start REAL NOT NULL DEFAULT 0,
		time_source TEXT,
		outcome TEXT NOT NULL DEFAULT 'running',
		details TEXT,
		started_at DATETIME NOT NULL,
		ended_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS pdr (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		inputs_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		operation_id TEXT,
		details TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_operations_run_dir ON operations(run_dir);
	CREATE INDEX IF NOT EXISTS idx_pdr_operation_id ON pdr(operation_id);
	CREATE INDEX IF NOT EXISTS idx_pdr_inputs_hash ON pdr(inputs_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// --- Operation Operations ---

// StartOperation inserts a running operation.
func (s *Store) StartOperation(kind models.OperationKind, runDir, destination string) (*models.Operation, error) {
	op := &models.Operation{
		ID:          uuid.New().String(),
		Kind:        kind,
		RunDir:      runDir,
		Destination: destination,
		Outcome:     models.OutcomeRunning,
		StartedAt:   time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO operations (id, kind, run_dir, destination, outcome, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		op.ID, op.Kind, op.RunDir, op.Destination, op.Outcome, op.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert operation: %w", err)
	}
	return op, nil
}

// FinishOperation stores the resumption point and outcome of an operation.
func (s *Store) FinishOperation(op *models.Operation) error {
	now := time.Now().UTC()
	op.EndedAt = &now

	result, err := s.db.Exec(
		`UPDATE operations SET destination = ?, snapshot = ?, i_start = ?, t_start = ?, time_source = ?, outcome = ?, details = ?, ended_at = ? WHERE id = ?`,
		op.Destination, op.Snapshot, op.IStart, op.TStart, op.TimeSource, op.Outcome, op.Details, now, op.ID,
	)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("operation %s not found", op.ID)
	}
	return nil
}

// GetOperation retrieves an operation by ID.
func (s *Store) GetOperation(id string) (*models.Operation, error) {
	row := s.db.QueryRow(
		`SELECT id, kind, run_dir, destination, snapshot, i_start, t_start, time_source, outcome, details, started_at, ended_at FROM operations WHERE id = ?`,
		id,
	)
	op, err := scanOperation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query operation: %w", err)
	}
	return op, nil
}

// ListOperations returns the most recent operations, optionally for one run directory.
func (s *Store) ListOperations(runDir string, limit int) ([]models.Operation, error) {
	query := `SELECT id, kind, run_dir, destination, snapshot, i_start, t_start, time_source, outcome, details, started_at, ended_at FROM operations`
	var args []interface{}

	if runDir != "" {
		query += ` WHERE run_dir = ?`
		args = append(args, runDir)
	}
	query += ` ORDER BY started_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var ops []models.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, *op)
	}
	return ops, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOperation(row scanner) (*models.Operation, error) {
	var (
		op          models.Operation
		destination sql.NullString
		timeSource  sql.NullString
		details     sql.NullString
		endedAt     sql.NullTime
	)
	err := row.Scan(&op.ID, &op.Kind, &op.RunDir, &destination, &op.Snapshot, &op.IStart, &op.TStart,
		&timeSource, &op.Outcome, &details, &op.StartedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	op.Destination = destination.String
	op.TimeSource = timeSource.String
	op.Details = details.String
	if endedAt.Valid {
		op.EndedAt = &endedAt.Time
	}
	return &op, nil
}

// --- PDR Operations ---

// WritePDR writes a Process Decision Record.
func (s *Store) WritePDR(action, inputsHash, outcome, operationID, details string) (*models.PDREntry, error) {
	now := time.Now().UTC()
	pdr := &models.PDREntry{
		ID:          uuid.New().String(),
		Action:      action,
		InputsHash:  inputsHash,
		Outcome:     outcome,
		OperationID: operationID,
		Details:     details,
		Timestamp:   now,
	}

	_, err := s.db.Exec(
		`INSERT INTO pdr (id, action, inputs_hash, outcome, operation_id, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pdr.ID, pdr.Action, pdr.InputsHash, pdr.Outcome, pdr.OperationID, pdr.Details, pdr.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pdr: %w", err)
	}
	return pdr, nil
}

// GetPDRsForOperation returns the decision records of an operation.
func (s *Store) GetPDRsForOperation(operationID string) ([]models.PDREntry, error) {
	return s.queryPDRs(
		`SELECT id, action, inputs_hash, outcome, operation_id, details, timestamp FROM pdr WHERE operation_id = ? ORDER BY timestamp ASC`,
		operationID,
	)
}

// FindPDRs returns the records of action with the given inputs hash and
// outcome, newest first.
func (s *Store) FindPDRs(action, inputsHash, outcome string) ([]models.PDREntry, error) {
	return s.queryPDRs(
		`SELECT id, action, inputs_hash, outcome, operation_id, details, timestamp FROM pdr WHERE action = ? AND inputs_hash = ? AND outcome = ? ORDER BY timestamp DESC`,
		action, inputsHash, outcome,
	)
}

func (s *Store) queryPDRs(query string, args ...interface{}) ([]models.PDREntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pdr: %w", err)
	}
	defer rows.Close()

	var entries []models.PDREntry
	for rows.Next() {
		var e models.PDREntry
		var opID, details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.InputsHash, &e.Outcome, &opID, &details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan pdr: %w", err)
		}
		e.OperationID = opID.String
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
