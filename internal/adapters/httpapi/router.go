// Package httpapi exposes stored events and the manual parse trigger over
// HTTP, next to the Prometheus endpoint.
package httpapi

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"eventbot/internal/ports/input"
)

// RequestObserver records served requests; the metrics collector implements it.
type RequestObserver interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
	Handler() http.Handler
}

type Handler struct {
	events     input.EventUseCase
	fallback   string
	adminToken string
	logger     *slog.Logger
}

// NewHandler builds the API handler. An empty adminToken disables POST /v1/parse.
func NewHandler(events input.EventUseCase, defaultLanguage, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{events: events, fallback: defaultLanguage, adminToken: adminToken, logger: logger}
}

// NewRouter assembles the gin engine. metrics may be nil.
func NewRouter(h *Handler, metrics RequestObserver) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger, metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/events", h.ListEvents)
		v1.POST("/parse", h.requireAdmin, h.Parse)
	}
	return r
}

func requestLogger(logger *slog.Logger, metrics RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		elapsed := time.Since(start)
		if metrics != nil {
			metrics.ObserveRequest(c.Request.Method, path, c.Writer.Status(), elapsed)
		}
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", elapsed.Milliseconds())
	}
}

func (h *Handler) requireAdmin(c *gin.Context) {
	if h.adminToken == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "manual parse is disabled"})
		return
	}
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Next()
}
