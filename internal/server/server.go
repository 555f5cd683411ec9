// Package server exposes the reports over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ALT-F4-LLC/hours/internal/metrics"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

const (
	// DefaultMaxUpload caps the size of an uploaded archive.
	DefaultMaxUpload int64 = 256 << 20

	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDKey    = "request_id"
	shutdownTimeout = 10 * time.Second
)

// Server serves the report endpoints for one report service.
type Server struct {
	svc       *report.Service
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	maxUpload int64
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request metrics into m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMaxUpload overrides DefaultMaxUpload.
func WithMaxUpload(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// New returns a Server reading from svc.
func New(svc *report.Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		logger:    slog.Default(),
		maxUpload: DefaultMaxUpload,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.observe())

	r.GET("/health", s.health)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	tl := r.Group("/rest/timelogs")
	tl.POST("/upload", s.upload)
	tl.GET("/hasData", s.hasData)
	tl.GET("/getDataTimestamp", s.dataTimestamp)
	tl.GET("/hierarchy", s.hierarchy)
	tl.GET("/hierarchyComponents", s.hierarchyComponents)
	tl.GET("/users", s.users)
	tl.GET("/timesheet", s.timesheet)
	tl.GET("/userCalendar/:year/:userId", s.userCalendar)
	tl.GET("/stats", s.stats)
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe logs and counts every request. Routes are labelled by pattern so
// path parameters do not explode metric cardinality.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.ObserveRequest(c.Request.Method, route, status)

		attrs := []any{
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.Last().Error())
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("request", attrs...)
			return
		}
		s.logger.Info("request", attrs...)
	}
}

// requestID keeps a caller-supplied X-Request-ID or assigns a new one, and
// echoes it on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
