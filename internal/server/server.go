// Package server exposes the retrieval operations to the canvas UI as a
// JSON HTTP API. Pipeline degradation is never an HTTP error: a degraded
// result is a 200 whose body carries the placeholder citation.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veridex/veridex/internal/catalog"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/retrieve"
)

// Server wires the orchestrator behind gin handlers
type Server struct {
	engine       *gin.Engine
	orchestrator *retrieve.Orchestrator
	cfg          model.ServerConfig
	log          *zap.Logger
}

// New creates a server around an orchestrator
func New(orchestrator *retrieve.Orchestrator, cfg model.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:       engine,
		orchestrator: orchestrator,
		cfg:          cfg,
		log:          log,
	}

	engine.Use(s.requestLogger())

	engine.GET("/healthz", s.handleHealth)

	api := engine.Group("/api/v1")
	api.GET("/rights", s.handleRights)
	api.POST("/legal-framework", s.handleLegalFramework)
	api.POST("/field-status", s.handleFieldStatus)
	api.POST("/nexus", s.handleNexus)
	api.POST("/semantic-match", s.handleSemanticMatch)

	return s
}

// Handler returns the http.Handler for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails
func (s *Server) Run() error {
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))
	return s.engine.Run(s.cfg.Addr)
}

// requestLogger assigns a request ID and logs each request
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.NewString()
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		s.log.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRights(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rights": catalog.All()})
}

type evidenceRequest struct {
	Right    string `json:"right" binding:"required"`
	Scope    string `json:"scope"`
	SubScope string `json:"subScope"`
}

type nexusRequest struct {
	RightA   string `json:"rightA" binding:"required"`
	RightB   string `json:"rightB" binding:"required"`
	Scope    string `json:"scope"`
	SubScope string `json:"subScope"`
}

type matchRequest struct {
	Term string `json:"term" binding:"required"`
}

func (s *Server) handleLegalFramework(c *gin.Context) {
	var req evidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.opContext(c)
	defer cancel()

	result := s.orchestrator.GetLegalFramework(ctx, req.Right, model.ParseScope(req.Scope), req.SubScope)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleFieldStatus(c *gin.Context) {
	var req evidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.opContext(c)
	defer cancel()

	result := s.orchestrator.GetFieldStatus(ctx, req.Right, model.ParseScope(req.Scope), req.SubScope)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleNexus(c *gin.Context) {
	var req nexusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.opContext(c)
	defer cancel()

	result := s.orchestrator.GetNexus(ctx, req.RightA, req.RightB, model.ParseScope(req.Scope), req.SubScope)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSemanticMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.opContext(c)
	defer cancel()

	matches := s.orchestrator.GetSemanticMatches(ctx, req.Term, catalog.All())
	if matches == nil {
		matches = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// opContext bounds one operation with the server timeout
func (s *Server) opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.Timeout
	if timeout == 0 {
		timeout = 3 * time.Minute
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
