// Package store logs received tool executions to SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/toolrec/toolrec/internal/model"
)

// ExecutionLog is an append-only SQLite log of tool-usage episodes.
type ExecutionLog struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewExecutionLog opens or creates a SQLite database at the given path.
func NewExecutionLog(dbPath string) (*ExecutionLog, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	l := &ExecutionLog{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return l, nil
}

func (l *ExecutionLog) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), l.entropy).String()
}

func (l *ExecutionLog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tool_executions (
		id          TEXT PRIMARY KEY,
		timestamp   TEXT NOT NULL,
		steps       TEXT NOT NULL,
		step_count  INTEGER NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_executions_timestamp ON tool_executions(timestamp);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Append records one execution. Steps must be non-empty.
func (l *ExecutionLog) Append(ctx context.Context, steps []string) (*model.Execution, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps to record")
	}

	now := time.Now().UTC()
	id := l.newID()

	stepsJSON, _ := json.Marshal(steps)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO tool_executions (id, timestamp, steps, step_count, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, now.Format(time.RFC3339Nano), string(stepsJSON), len(steps),
		now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert execution: %w", err)
	}

	return &model.Execution{
		ID:        id,
		Timestamp: now,
		Steps:     steps,
		StepCount: len(steps),
		CreatedAt: now,
	}, nil
}

// Recent returns the newest executions, most recent first.
func (l *ExecutionLog) Recent(ctx context.Context, limit int) ([]model.Execution, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, timestamp, steps, step_count, created_at
		 FROM tool_executions
		 ORDER BY timestamp DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []model.Execution
	for rows.Next() {
		var e model.Execution
		var ts, created, stepsJSON string
		if err := rows.Scan(&e.ID, &ts, &stepsJSON, &e.StepCount, &created); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		json.Unmarshal([]byte(stepsJSON), &e.Steps)
		executions = append(executions, e)
	}
	return executions, rows.Err()
}

// Close closes the underlying database.
func (l *ExecutionLog) Close() error {
	return l.db.Close()
}
