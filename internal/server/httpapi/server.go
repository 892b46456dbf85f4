package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"auracx/internal/config"
	"auracx/internal/logging"
	"auracx/internal/observability"
	"auracx/internal/orchestrator"
)

// Server hosts the chat API over gin.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server

	cfg       *config.Config
	logger    logging.Logger
	startTime time.Time
}

// NewServer builds the engine, middleware chain and routes. The returned
// server is ready to Run.
func NewServer(cfg *config.Config, orch *orchestrator.Orchestrator, metrics *observability.Metrics, logger logging.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestIDMiddleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	engine.Use(cors.New(corsConfig))

	server := &Server{
		engine:    engine,
		cfg:       cfg,
		logger:    logging.OrNop(logger),
		startTime: time.Now(),
	}

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	chat := NewChatHandler(orch, server.logger)

	engine.GET("/", server.handleRoot)
	engine.GET("/health", server.handleHealth)
	engine.POST("/chat", chat.Chat)
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return server
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "AuraCX Customer Service API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"chat":    "POST /chat",
			"health":  "GET /health",
			"metrics": "GET /metrics",
		},
	})
}

// handleHealth reports liveness. It never touches the LLM backend.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"environment": s.cfg.Environment,
		"uptime":      time.Since(s.startTime).String(),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}
