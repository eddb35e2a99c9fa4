// Package server exposes the intake pipeline over HTTP.
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docintake/internal/document"
	"docintake/internal/logger"
	"docintake/internal/pipeline"
	"docintake/internal/storage"
)

// Server routes HTTP requests to pipeline operations.
type Server struct {
	pipeline *pipeline.Service
	engine   *gin.Engine
	log      zerolog.Logger
}

// documentRequest identifies a stored document.
type documentRequest struct {
	FilePath string `json:"file_path" binding:"required"`
	FileURL  string `json:"file_url"`
}

// New builds the HTTP server around a pipeline service.
func New(p *pipeline.Service) *Server {
	s := &Server{
		pipeline: p,
		log:      logger.WithComponent("server"),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestID())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.POST("/list_documents/*prefix", s.listDocuments)
	engine.POST("/read_and_classify", s.readAndClassify)
	engine.POST("/extract_fields", s.extractFields)

	s.engine = engine
	return s
}

// Run starts the HTTP listener and blocks.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("HTTP server starting")
	return s.engine.Run(addr)
}

// Handler exposes the router (for tests).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// requestID attaches a request ID to every request and logs completion.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)

		c.Next()

		reqLogger := logger.WithRequestID(id)
		reqLogger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("Request handled")
	}
}

func (s *Server) listDocuments(c *gin.Context) {
	prefix := strings.TrimPrefix(c.Param("prefix"), "/")

	listing, err := s.pipeline.ListDocuments(c.Request.Context(), prefix)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *Server) readAndClassify(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := s.pipeline.LoadDocument(c.Request.Context(), req.FilePath, req.FileURL)
	if err != nil {
		s.renderError(c, err)
		return
	}

	result, err := s.pipeline.ReadAndClassify(c.Request.Context(), d)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) extractFields(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := s.pipeline.LoadDocument(c.Request.Context(), req.FilePath, req.FileURL)
	if err != nil {
		s.renderError(c, err)
		return
	}

	result, err := s.pipeline.ExtractFields(c.Request.Context(), d)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// renderError maps pipeline errors to HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrBlobNotFound):
		status = http.StatusNotFound
	case errors.Is(err, document.ErrUnsupportedFileType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, document.ErrUndeclaredMissingField):
		status = http.StatusBadGateway
	}

	reqLogger := logger.WithRequestID(requestID)
	reqLogger.Error().
		Err(err).
		Int("status", status).
		Msg("Request failed")

	c.JSON(status, gin.H{"error": err.Error()})
}
