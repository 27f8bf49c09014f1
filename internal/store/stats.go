package store

import (
	"context"
	"encoding/json"
	"os"
)

// Stats holds execution-log statistics.
type Stats struct {
	DBPath        string `json:"db_path"`
	DBSizeBytes   int64  `json:"db_size_bytes"`
	Executions    int    `json:"executions"`
	TotalSteps    int    `json:"total_steps"`
	DistinctTools int    `json:"distinct_tools"`
}

// Stats returns log statistics.
func (l *ExecutionLog) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tool_executions`).Scan(&st.Executions)
	l.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(step_count), 0) FROM tool_executions`).Scan(&st.TotalSteps)

	// Steps are stored as JSON arrays; count distinct names in Go.
	rows, err := l.db.QueryContext(ctx, `SELECT steps FROM tool_executions`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	distinct := make(map[string]bool)
	for rows.Next() {
		var stepsJSON string
		if err := rows.Scan(&stepsJSON); err != nil {
			return st, err
		}
		var steps []string
		json.Unmarshal([]byte(stepsJSON), &steps)
		for _, s := range steps {
			distinct[s] = true
		}
	}
	st.DistinctTools = len(distinct)

	return st, rows.Err()
}
