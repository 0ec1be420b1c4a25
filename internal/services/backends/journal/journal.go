// Package journal records every simulated backend operation in an
// in-memory SQLite database so operators can inspect what the engine did.
package journal

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/homestream/internal/platform/storage/sqlitemigrate"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// DefaultDSN keeps the journal in process memory; nothing survives a
// restart, matching the rest of the simulation.
const DefaultDSN = "file:homestream-journal?mode=memory&cache=shared"

// Entry is one recorded operation.
type Entry struct {
	ID        int64           `json:"id"`
	System    string          `json:"system"`
	Operation string          `json:"operation"`
	Params    json.RawMessage `json:"params"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}

// Journal is an append-only operation log.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to dsn, applies the schema, and returns the journal.
func Open(dsn string) (*Journal, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	// The shared-cache in-memory database disappears when its last
	// connection closes; a single connection keeps it alive.
	db.SetMaxOpenConns(1)
	if err := sqlitemigrate.ApplyMigrations(db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal db: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one operation. Params and response are marshaled to JSON;
// a nil value records as an empty object.
func (j *Journal) Record(ctx context.Context, system, operation string, params, response any) error {
	paramsJSON, err := marshal(params)
	if err != nil {
		return fmt.Errorf("marshal journal params: %w", err)
	}
	responseJSON, err := marshal(response)
	if err != nil {
		return fmt.Errorf("marshal journal response: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO operation_journal (system, operation, params, response, created_at) VALUES (?, ?, ?, ?, ?)`,
		system, operation, string(paramsJSON), string(responseJSON), j.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. An empty system
// matches all systems; limit <= 0 defaults to 50.
func (j *Journal) List(ctx context.Context, system string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, system, operation, params, response, created_at FROM operation_journal`
	args := []any{}
	if system != "" {
		query += ` WHERE system = ?`
		args = append(args, system)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var params, response, createdAt string
		if err := rows.Scan(&e.ID, &e.System, &e.Operation, &params, &response, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Params = json.RawMessage(params)
		e.Response = json.RawMessage(response)
		at, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp: %w", err)
		}
		e.CreatedAt = at
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

func marshal(v any) ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}
