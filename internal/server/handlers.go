// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/content-engine/internal/export"
	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/internal/store"
	"github.com/pdiddy/content-engine/pkg/types"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error string `json:"error"`
}

// exportRequest is the body of POST /api/export/:format.
type exportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Layout  string `json:"layout"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"backend": s.gen.Backend(),
		"history": s.history != nil,
	})
}

func (s *Server) createArticle(c *gin.Context) {
	var req types.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	s.generate(c, func(ctx context.Context) (*types.Generation, error) {
		return s.gen.Article(ctx, req)
	})
}

func (s *Server) createPost(c *gin.Context) {
	var req types.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	s.generate(c, func(ctx context.Context) (*types.Generation, error) {
		return s.gen.Post(ctx, req)
	})
}

func (s *Server) regenerate(c *gin.Context) {
	prev, ok := s.lookup(c)
	if !ok {
		return
	}
	var o generate.Overrides
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&o); err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
	}
	s.generate(c, func(ctx context.Context) (*types.Generation, error) {
		return s.gen.Regenerate(ctx, prev, o)
	})
}

// generate runs fn under the request timeout, stores the result, and writes
// it with 201. Validation errors are 400; backend failures are 502.
func (s *Server) generate(c *gin.Context, fn func(ctx context.Context) (*types.Generation, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	gen, err := fn(ctx)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, types.ErrInvalidRequest):
			status = http.StatusBadRequest
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		s.fail(c, status, err)
		return
	}

	if s.history != nil {
		if err := s.history.Save(c.Request.Context(), gen); err != nil {
			// The content is still returned; only persistence failed.
			s.logger.Warn("saving generation failed", "id", gen.ID, "error", err)
			gen.Warnings = append(gen.Warnings, fmt.Sprintf("saving to history: %v", err))
		}
	}
	c.JSON(http.StatusCreated, gen)
}

func (s *Server) listGenerations(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}
	opts := store.ListOptions{
		Kind:  types.ContentKind(c.Query("kind")),
		Query: c.Query("q"),
	}
	if opts.Kind != "" && opts.Kind != types.KindArticle && opts.Kind != types.KindPost {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("kind must be article or post, got %q", opts.Kind))
		return
	}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer, got %q", l))
			return
		}
		opts.Limit = n
	}

	gens, err := s.history.List(c.Request.Context(), opts)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if gens == nil {
		gens = []types.Generation{}
	}
	c.JSON(http.StatusOK, gens)
}

func (s *Server) getGeneration(c *gin.Context) {
	gen, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gen)
}

func (s *Server) deleteGeneration(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}
	if err := s.history.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.failLookup(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) exportGeneration(c *gin.Context) {
	f, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	gen, ok := s.lookup(c)
	if !ok {
		return
	}
	s.download(c, export.FromGeneration(gen), f)
}

func (s *Server) exportText(c *gin.Context) {
	f, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	layout := export.Layout(req.Layout)
	switch layout {
	case "":
		layout = export.LayoutFlow
	case export.LayoutFlow, export.LayoutLines:
	default:
		s.fail(c, http.StatusBadRequest, fmt.Errorf("layout must be flow or lines, got %q", req.Layout))
		return
	}
	s.download(c, export.Document{Title: req.Title, Body: req.Content, Layout: layout}, f)
}

// download renders doc in format f and sends it as an attachment.
func (s *Server) download(c *gin.Context, doc export.Document, f export.Format) {
	exp, err := export.ForFormat(f, s.export)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := exp.Export(&buf, doc); err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("exporting %s: %w", f, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(doc, f)))
	c.Data(http.StatusOK, export.ContentType(f), buf.Bytes())
}

// lookup loads the generation named by the :id parameter, writing an error
// response when it cannot.
func (s *Server) lookup(c *gin.Context) (*types.Generation, bool) {
	if !s.requireHistory(c) {
		return nil, false
	}
	gen, err := s.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.failLookup(c, err)
		return nil, false
	}
	return gen, true
}

func (s *Server) requireHistory(c *gin.Context) bool {
	if s.history == nil {
		s.fail(c, http.StatusNotFound, errors.New("history is disabled"))
		return false
	}
	return true
}

func (s *Server) failLookup(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	s.fail(c, http.StatusInternalServerError, err)
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "status", status, "error", err, "request_id", c.GetString("request_id"))
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}
