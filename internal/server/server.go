// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes article and post generation, history, and export
// over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pdiddy/content-engine/internal/export"
	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/internal/store"
	"github.com/pdiddy/content-engine/pkg/types"
)

const (
	defaultRequestTimeout = 60 * time.Second
	shutdownTimeout       = 30 * time.Second
	requestIDHeader       = "X-Request-ID"
)

// History is the generation history used by the server. *store.Store
// implements it.
type History interface {
	Save(ctx context.Context, g *types.Generation) error
	Get(ctx context.Context, id string) (*types.Generation, error)
	List(ctx context.Context, opts store.ListOptions) ([]types.Generation, error)
	Delete(ctx context.Context, id string) error
}

// Options configures a Server.
type Options struct {
	// History persists generations. Nil disables the history routes.
	History History

	// Export configures downloaded documents.
	Export export.Options

	// RequestTimeout bounds each generation request. Zero uses 60s.
	RequestTimeout time.Duration

	// Logger receives request and error logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// Server serves the HTTP API.
type Server struct {
	gen     *generate.Generator
	history History
	export  export.Options
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Server for gen.
func New(gen *generate.Generator, opts Options) *Server {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		gen:     gen,
		history: opts.History,
		export:  opts.Export,
		timeout: timeout,
		logger:  logger,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.requestLogger())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/articles", s.createArticle)
		api.POST("/posts", s.createPost)
		api.POST("/export/:format", s.exportText)

		gens := api.Group("/generations")
		gens.GET("", s.listGenerations)
		gens.GET("/:id", s.getGeneration)
		gens.DELETE("/:id", s.deleteGeneration)
		gens.POST("/:id/regenerate", s.regenerate)
		gens.GET("/:id/export/:format", s.exportGeneration)
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr, "backend", s.gen.Backend())
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

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// requestID tags each request with an ID, reusing the caller's header when
// present.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}
