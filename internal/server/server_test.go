package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/toolrec/toolrec/internal/ema"
	"github.com/toolrec/toolrec/internal/model"
	"github.com/toolrec/toolrec/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	l, err := store.NewExecutionLog(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	engine := ema.New(ema.DefaultParams())
	return New(l, engine, filepath.Join(dir, "state"))
}

func post(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	if w := get(t, s, "/healthz"); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestReceive(t *testing.T) {
	s := newTestServer(t)

	w := post(t, s, "/api/tools", ReceiveRequest{Steps: []string{"create_event", "send_email"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp ReceiveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "success" || resp.ToolCount != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestReceive_BadRequests(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tools", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON: status = %d", w.Code)
	}

	if w := post(t, s, "/api/tools", ReceiveRequest{}); w.Code != http.StatusBadRequest {
		t.Errorf("empty steps: status = %d", w.Code)
	}
}

func TestRecent(t *testing.T) {
	s := newTestServer(t)
	post(t, s, "/api/tools", ReceiveRequest{Steps: []string{"a"}})
	post(t, s, "/api/tools", ReceiveRequest{Steps: []string{"b"}})

	w := get(t, s, "/api/tools/recent?limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var executions []model.Execution
	if err := json.Unmarshal(w.Body.Bytes(), &executions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(executions) != 1 {
		t.Fatalf("expected 1 execution, got %d", len(executions))
	}
	if executions[0].Steps[0] != "b" {
		t.Errorf("expected newest first, got %v", executions[0].Steps)
	}

	if w := get(t, s, "/api/tools/recent?limit=zero"); w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d", w.Code)
	}
}

func TestRecent_EmptyLogReturnsEmptyList(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/api/tools/recent")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := bytes.TrimSpace(w.Body.Bytes()); string(body) != "[]" {
		t.Errorf("expected empty JSON list, got %s", body)
	}
}

func TestRecommendations(t *testing.T) {
	s := newTestServer(t)
	post(t, s, "/api/tools", ReceiveRequest{Steps: []string{"a", "b"}})
	post(t, s, "/api/tools", ReceiveRequest{Steps: []string{"a", "b"}})

	w := get(t, s, "/api/recommendations")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var sel model.Selections
	if err := json.Unmarshal(w.Body.Bytes(), &sel); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sel.FromRecent) == 0 || len(sel.FromFrequency) == 0 {
		t.Fatalf("expected non-empty picks: %+v", sel)
	}
	if sel.FromRecent[0].Names != "a, b" {
		t.Errorf("top recent pick = %q", sel.FromRecent[0].Names)
	}
	if sel.SingleTools[0] != "b" {
		t.Errorf("single tools = %v", sel.SingleTools)
	}
}

func TestReceive_Checkpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	l, err := store.NewExecutionLog(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	defer l.Close()

	stateDir := filepath.Join(dir, "state")
	s := New(l, ema.New(ema.DefaultParams()), stateDir)
	post(t, s, "/api/tools", ReceiveRequest{Steps: []string{"a", "b"}})

	restored := ema.New(ema.DefaultParams())
	if err := restored.Load(stateDir); err != nil {
		t.Fatalf("load checkpoint: %v", err)
	}
	if restored.Stats().Blocks != 1 {
		t.Errorf("checkpoint holds %d blocks, want 1", restored.Stats().Blocks)
	}
}
