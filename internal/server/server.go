// Package server exposes the verification pipeline over HTTP: a streaming
// analyze endpoint plus the synchronous research endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/model"
	"github.com/veristream/veristream/internal/pipeline"
	"github.com/veristream/veristream/internal/research"
)

// Server is the HTTP front of the verification backend.
type Server struct {
	cfg        model.ServerConfig
	pipe       *pipeline.Pipeline
	coord      *pipeline.Coordinator
	researcher *research.Researcher
	minArticle int
	logger     *zap.Logger
	engine     *gin.Engine
}

// New builds the server and its routes.
func New(cfg model.ServerConfig, pipe *pipeline.Pipeline, coord *pipeline.Coordinator, researcher *research.Researcher, minArticleChars int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog(logger), bodyLimit(cfg.MaxBodyBytes))

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		cfg:        cfg,
		pipe:       pipe,
		coord:      coord,
		researcher: researcher,
		minArticle: minArticleChars,
		logger:     logger,
		engine:     engine,
	}

	engine.GET("/healthz", s.handleHealth)
	engine.POST("/analyze", s.handleAnalyze)
	engine.POST("/additional-sources", s.handleAdditionalSources)
	engine.POST("/research", s.handleResearch)

	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.Int("port", s.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// accessLog logs one line per request.
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// bodyLimit caps the inbound request body.
func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
