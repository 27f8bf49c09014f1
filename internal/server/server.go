// Package server exposes the tool receiver and recommendation HTTP API.
package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/toolrec/toolrec/internal/ema"
	"github.com/toolrec/toolrec/internal/model"
	"github.com/toolrec/toolrec/internal/store"
)

// Server holds the HTTP handlers' dependencies. The engine defines no
// locking of its own, so all engine access goes through mu.
type Server struct {
	log      *store.ExecutionLog
	engine   *ema.Engine
	stateDir string
	mu       sync.Mutex
	router   *gin.Engine
}

// ReceiveRequest is the POST /api/tools body.
type ReceiveRequest struct {
	Steps []string `json:"steps"`
}

// ReceiveResponse is the POST /api/tools reply.
type ReceiveResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ToolCount int    `json:"tool_count"`
}

// New wires a server around an execution log and an engine. stateDir
// is where engine state is checkpointed after each received block; an
// empty stateDir disables checkpointing.
func New(l *store.ExecutionLog, engine *ema.Engine, stateDir string) *Server {
	s := &Server{log: l, engine: engine, stateDir: stateDir}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.POST("/api/tools", s.handleReceive)
	r.GET("/api/tools/recent", s.handleRecent)
	r.GET("/api/recommendations", s.handleRecommendations)

	s.router = r
	return s
}

// Router returns the underlying gin router, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("toolrec listening on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReceive(c *gin.Context) {
	var req ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ReceiveResponse{Status: "error", Message: "invalid JSON"})
		return
	}
	if len(req.Steps) == 0 {
		c.JSON(http.StatusBadRequest, ReceiveResponse{Status: "error", Message: "no tool names provided"})
		return
	}

	if _, err := s.log.Append(c.Request.Context(), req.Steps); err != nil {
		c.JSON(http.StatusInternalServerError, ReceiveResponse{Status: "error", Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.engine.AddBlock(strings.Join(req.Steps, ", "))
	if s.stateDir != "" {
		if err := s.engine.Save(s.stateDir); err != nil {
			log.Printf("checkpoint failed: %v", err)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, ReceiveResponse{
		Status:    "success",
		Message:   "recorded " + strconv.Itoa(len(req.Steps)) + " tool names",
		ToolCount: len(req.Steps),
	})
}

func (s *Server) handleRecent(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid limit"})
			return
		}
		limit = n
	}

	executions, err := s.log.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if executions == nil {
		executions = []model.Execution{}
	}
	c.JSON(http.StatusOK, executions)
}

func (s *Server) handleRecommendations(c *gin.Context) {
	s.mu.Lock()
	sel := s.engine.Selections()
	s.mu.Unlock()

	c.JSON(http.StatusOK, sel)
}
