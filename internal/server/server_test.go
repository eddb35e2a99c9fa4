package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"docintake/internal/ocr"
	"docintake/internal/pipeline"
)

type noopOCR struct{}

func (noopOCR) AnalyzeDocument(ctx context.Context, data []byte) (*ocr.AnalyzeResult, error) {
	return &ocr.AnalyzeResult{}, nil
}

type noopCompleter struct{}

func (noopCompleter) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, process string) (string, error) {
	return "{}", nil
}

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	service := pipeline.NewService(noopOCR{}, noopCompleter{}, noopCompleter{}, nil)
	return New(service)
}

func TestHealth(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("responses should carry a request ID")
	}
}

func TestReadAndClassifyRequiresFilePath(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/read_and_classify", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a missing file_path", rec.Code)
	}
}

func TestListDocumentsWithoutStorage(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/list_documents/2024/", nil)
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 without blob storage", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want the caller's ID echoed", got)
	}
}
