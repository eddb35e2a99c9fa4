package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"docintake/internal/logger"
)

const (
	// MaxDocumentSizeBytes is the maximum document size for synchronous
	// processing (20MB)
	MaxDocumentSizeBytes = 20 * 1024 * 1024

	// DefaultTimeout is the default timeout for a single analysis call
	DefaultTimeout = 60 * time.Second
)

// DocumentAIConfig holds the processor settings for Document AI.
type DocumentAIConfig struct {
	ProjectID        string
	Location         string
	ProcessorID      string
	ProcessorVersion string
	Timeout          time.Duration
}

// DocumentAIService implements Service using the Google Document AI OCR
// processor. The processor must have barcode detection enabled, otherwise
// QR codes on invoices go unseen.
type DocumentAIService struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
	log    zerolog.Logger
}

// NewDocumentAIService creates a service with credentials from the
// environment (GOOGLE_CREDENTIALS inline JSON or
// GOOGLE_APPLICATION_CREDENTIALS file path).
func NewDocumentAIService(ctx context.Context, config DocumentAIConfig) (Service, error) {
	const op = "NewDocumentAIService"

	if config.ProjectID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "GOOGLE_CLOUD_PROJECT is required")
	}
	if config.ProcessorID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "DOCUMENT_AI_PROCESSOR_ID is required")
	}
	if config.Location == "" {
		config.Location = "us"
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	var clientOptions []option.ClientOption

	// Regional processors live behind regional endpoints
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(clientOptions) == 0 {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &DocumentAIService{
		client: client,
		config: config,
		log:    logger.WithComponent("document-ai"),
	}, nil
}

// NewDocumentAIServiceWithClient creates a service with an explicit client
// (for testing).
func NewDocumentAIServiceWithClient(config DocumentAIConfig, client *documentai.DocumentProcessorClient) Service {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &DocumentAIService{
		client: client,
		config: config,
		log:    logger.WithComponent("document-ai"),
	}
}

// AnalyzeDocument runs the OCR processor over raw document bytes and returns
// per-page text and barcodes.
func (s *DocumentAIService) AnalyzeDocument(ctx context.Context, data []byte) (*AnalyzeResult, error) {
	const op = "AnalyzeDocument"

	startTime := time.Now()

	if len(data) == 0 {
		return nil, WrapOCRError(op, ErrEmptyDocument, "empty document data")
	}
	if len(data) > MaxDocumentSizeBytes {
		return nil, WrapOCRError(op, ErrDocumentTooLarge, fmt.Sprintf("file size: %d bytes", len(data)))
	}

	processCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: s.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: detectMimeType(data),
			},
		},
	}

	s.log.Debug().
		Str("processor", s.config.ProcessorID).
		Int("size_bytes", len(data)).
		Msg("Sending document to Document AI")

	resp, err := s.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, s.handleProcessingError(op, err)
	}

	if resp.Document == nil {
		return nil, WrapOCRError(op, ErrAnalysisFailed, "no document in response")
	}

	result := s.buildResult(resp.Document)
	result.ProcessedAt = time.Now()
	result.ProcessingDuration = time.Since(startTime)

	s.log.Info().
		Int("pages", len(result.Pages)).
		Int("qr_codes", len(result.QRCodePayloads())).
		Dur("duration", result.ProcessingDuration).
		Msg("Document AI analysis completed")

	return result, nil
}

// buildResult converts a Document AI response document into an AnalyzeResult.
func (s *DocumentAIService) buildResult(doc *documentaipb.Document) *AnalyzeResult {
	result := &AnalyzeResult{
		Content: doc.Text,
	}

	for i, page := range doc.Pages {
		p := Page{
			Number: i + 1,
			Text:   pageText(doc.Text, page),
		}
		for _, detected := range page.DetectedBarcodes {
			if detected.Barcode == nil {
				continue
			}
			p.Barcodes = append(p.Barcodes, Barcode{
				Kind:    detected.Barcode.Format,
				Payload: detected.Barcode.RawValue,
			})
		}
		result.Pages = append(result.Pages, p)
	}

	return result
}

// pageText resolves a page's text from the document-level text using the
// page layout's text anchor segments.
func pageText(docText string, page *documentaipb.Document_Page) string {
	if page.Layout == nil || page.Layout.TextAnchor == nil {
		return ""
	}

	var sb strings.Builder
	for _, segment := range page.Layout.TextAnchor.TextSegments {
		start := int(segment.StartIndex)
		end := int(segment.EndIndex)
		if start < 0 || end > len(docText) || start > end {
			continue
		}
		sb.WriteString(docText[start:end])
	}
	return sb.String()
}

// processorName constructs the full processor resource name.
func (s *DocumentAIService) processorName() string {
	if s.config.ProcessorVersion != "" {
		return fmt.Sprintf("projects/%s/locations/%s/processors/%s/processorVersions/%s",
			s.config.ProjectID, s.config.Location, s.config.ProcessorID, s.config.ProcessorVersion)
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		s.config.ProjectID, s.config.Location, s.config.ProcessorID)
}

// handleProcessingError converts Document AI errors to OCR errors.
func (s *DocumentAIService) handleProcessingError(op string, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return WrapOCRError(op, ErrMissingCredentials, "insufficient permissions for Document AI")
	case strings.Contains(errStr, "QUOTA_EXCEEDED") || strings.Contains(errStr, "RESOURCE_EXHAUSTED"):
		return WrapOCRError(op, ErrQuotaExceeded, "Document AI API quota exceeded")
	case strings.Contains(errStr, "NOT_FOUND"):
		return WrapOCRError(op, ErrProcessorNotFound, fmt.Sprintf("processor not found: %s", s.config.ProcessorID))
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return WrapOCRError(op, ErrAnalysisFailed, "document format not supported or corrupted")
	case strings.Contains(errStr, "DeadlineExceeded") || strings.Contains(errStr, "context deadline exceeded"):
		return WrapOCRError(op, context.DeadlineExceeded, "processing timeout")
	default:
		return WrapOCRError(op, ErrAnalysisFailed, fmt.Sprintf("Document AI error: %v", err))
	}
}

// detectMimeType picks the request MIME type from the payload. Document AI
// rejects requests whose MIME type does not match the content.
func detectMimeType(data []byte) string {
	mtype := mimetype.Detect(data)
	if mtype.Is("application/octet-stream") {
		// Unrecognized content, let the processor decide
		return "application/pdf"
	}
	return mtype.String()
}

// Close closes the underlying Document AI client.
func (s *DocumentAIService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
