package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestLog(t *testing.T) (*ExecutionLog, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	l, err := NewExecutionLog(dbPath)
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, dbPath
}

func TestAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLog(t)

	exec, err := l.Append(ctx, []string{"create_event", "send_email"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if exec.ID == "" {
		t.Error("expected non-empty ID")
	}
	if exec.StepCount != 2 {
		t.Errorf("step count = %d, want 2", exec.StepCount)
	}

	got, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 execution, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Steps, []string{"create_event", "send_email"}) {
		t.Errorf("steps = %v", got[0].Steps)
	}
}

func TestRecent_NewestFirstAndLimit(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLog(t)

	l.Append(ctx, []string{"a"})
	l.Append(ctx, []string{"b"})
	l.Append(ctx, []string{"c"})

	got, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got[0].Steps[0] != "c" || got[1].Steps[0] != "b" {
		t.Errorf("expected newest first, got %v then %v", got[0].Steps, got[1].Steps)
	}
}

func TestAppend_EmptySteps(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLog(t)

	if _, err := l.Append(ctx, nil); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	l, dbPath := newTestLog(t)

	l.Append(ctx, []string{"a", "b"})
	l.Append(ctx, []string{"b", "c", "d"})

	st, err := l.Stats(ctx, dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Executions != 2 {
		t.Errorf("executions = %d, want 2", st.Executions)
	}
	if st.TotalSteps != 5 {
		t.Errorf("total steps = %d, want 5", st.TotalSteps)
	}
	if st.DistinctTools != 4 {
		t.Errorf("distinct tools = %d, want 4", st.DistinctTools)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	l, err := NewExecutionLog(dbPath)
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	l.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
