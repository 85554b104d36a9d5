package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matthieukhl/ordersynth/internal/database"
	"github.com/matthieukhl/ordersynth/internal/generator"
	"github.com/matthieukhl/ordersynth/internal/models"
)

const (
	serviceName    = "ordersynth"
	serviceVersion = "0.1.0"

	defaultPreviewCount = 100
	maxPreviewCount     = 10000
)

type Server struct {
	router *gin.Engine
	db     *database.DB
	model  models.Model
	opts   generator.Options
	logger *zap.Logger
}

// NewServer creates a new server instance. db may be nil, in which case the
// health check does not report on a database.
func NewServer(db *database.DB, model models.Model, opts generator.Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	server := &Server{
		router: router,
		db:     db,
		model:  model,
		opts:   opts,
		logger: logger,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.GET("/orders", s.listOrders)
		api.GET("/summary", s.summary)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
