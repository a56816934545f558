// Package server is the HTTP surface: a small gin router exposing the ask
// endpoint, a health probe, and Prometheus metrics.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"civic-qa/internal/common/config"
	"civic-qa/internal/common/logger"
	"civic-qa/internal/common/observability"
)

// Answerer is what the handlers need from the pipeline.
type Answerer interface {
	Answer(ctx context.Context, query, sessionID string) (string, error)
}

// Pinger covers the health probe's view of the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the engine into HTTP handlers.
type Server struct {
	cfg    config.ServerConfig
	engine Answerer
	db     Pinger
	obs    *observability.Observability
	logger logger.Logger
	http   *http.Server
}

func New(cfg config.ServerConfig, engine Answerer, db Pinger, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		cfg:    cfg,
		engine: engine,
		db:     db,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Router builds the gin handler tree.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	router.GET("/", s.handleWelcome)
	router.POST("/ask", s.handleAsk)
	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Start runs the HTTP server until the context is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{"addr": s.http.Addr})
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := config.GetDuration(s.cfg.ShutdownTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down http server", nil)
	return s.http.Shutdown(shutdownCtx)
}
