package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matthieukhl/ordersynth/internal/generator"
	"github.com/matthieukhl/ordersynth/internal/models"
	"github.com/matthieukhl/ordersynth/internal/report"
)

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"service": serviceName,
		"version": serviceVersion,
	}

	if s.db != nil {
		if err := s.db.HealthCheck(c.Request.Context()); err != nil {
			s.logger.Warn("database health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"error":  "database connection failed",
			})
			return
		}
		body["database"] = string(s.db.Dialect)
	}

	c.JSON(http.StatusOK, body)
}

// listOrders generates a fresh dataset for the seed and count in the query.
func (s *Server) listOrders(c *gin.Context) {
	orders, ok := s.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) summary(c *gin.Context) {
	orders, ok := s.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Summarize(orders))
}

// generate runs a generator private to the request. It writes the error
// response itself and reports whether the handler should continue.
func (s *Server) generate(c *gin.Context) ([]models.Order, bool) {
	opts := s.opts

	if raw := c.Query("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid seed %q", raw)})
			return nil, false
		}
		opts.Seed = seed
	}

	count := defaultPreviewCount
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPreviewCount {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("count must be an integer between 1 and %d", maxPreviewCount),
			})
			return nil, false
		}
		count = n
	}

	g, err := generator.New(s.model, opts, s.logger)
	if err == nil {
		var orders []models.Order
		orders, err = g.Run(count)
		if err == nil {
			return orders, true
		}
	}

	var cfgErr *generator.ConfigurationError
	if errors.As(err, &cfgErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error()})
		return nil, false
	}
	s.logger.Error("generation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
	return nil, false
}
