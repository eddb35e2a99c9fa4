package ocr

import (
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
)

func testService(config DocumentAIConfig) *DocumentAIService {
	return &DocumentAIService{config: config, log: zerolog.Nop()}
}

func TestProcessorName(t *testing.T) {
	s := testService(DocumentAIConfig{
		ProjectID:   "my-project",
		Location:    "eu",
		ProcessorID: "proc-123",
	})
	want := "projects/my-project/locations/eu/processors/proc-123"
	if got := s.processorName(); got != want {
		t.Errorf("processorName() = %q, want %q", got, want)
	}

	s.config.ProcessorVersion = "pretrained-ocr-v2.0"
	want += "/processorVersions/pretrained-ocr-v2.0"
	if got := s.processorName(); got != want {
		t.Errorf("processorName() = %q, want %q", got, want)
	}
}

func TestBuildResult(t *testing.T) {
	docText := "first page textsecond page text"
	doc := &documentaipb.Document{
		Text: docText,
		Pages: []*documentaipb.Document_Page{
			{
				Layout: &documentaipb.Document_Page_Layout{
					TextAnchor: &documentaipb.Document_TextAnchor{
						TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
							{StartIndex: 0, EndIndex: 15},
						},
					},
				},
				DetectedBarcodes: []*documentaipb.Document_Page_DetectedBarcode{
					{Barcode: &documentaipb.Barcode{Format: "EAN_13", RawValue: "5601234567890"}},
					{Barcode: &documentaipb.Barcode{Format: KindQRCode, RawValue: "A:1*B:2"}},
				},
			},
			{
				Layout: &documentaipb.Document_Page_Layout{
					TextAnchor: &documentaipb.Document_TextAnchor{
						TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
							{StartIndex: 15, EndIndex: 31},
						},
					},
				},
				DetectedBarcodes: []*documentaipb.Document_Page_DetectedBarcode{
					{Barcode: &documentaipb.Barcode{Format: KindQRCode, RawValue: "C:3*D:4"}},
					{Barcode: nil},
				},
			},
		},
	}

	result := testService(DocumentAIConfig{}).buildResult(doc)

	if result.Content != docText {
		t.Errorf("Content = %q", result.Content)
	}
	if len(result.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(result.Pages))
	}
	if result.Pages[0].Text != "first page text" {
		t.Errorf("page 1 text = %q", result.Pages[0].Text)
	}
	if result.Pages[1].Text != "second page text" {
		t.Errorf("page 2 text = %q", result.Pages[1].Text)
	}
	if result.Pages[0].Number != 1 || result.Pages[1].Number != 2 {
		t.Error("pages should be numbered from 1 in document order")
	}

	// Non-QR barcodes are kept in pages but filtered from payloads
	payloads := result.QRCodePayloads()
	if len(payloads) != 2 {
		t.Fatalf("got %d QR payloads, want 2", len(payloads))
	}
	if payloads[0] != "A:1*B:2" || payloads[1] != "C:3*D:4" {
		t.Errorf("payloads = %v, want document order preserved", payloads)
	}
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"pdf", []byte("%PDF-1.7\n..."), "application/pdf"},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "image/png"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, "image/jpeg"},
		{"unknown", []byte{0x00, 0x01, 0x02, 0x03}, "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectMimeType(tt.data); got != tt.want {
				t.Errorf("detectMimeType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeDocumentRejectsBadInput(t *testing.T) {
	s := testService(DocumentAIConfig{Timeout: DefaultTimeout})

	if _, err := s.AnalyzeDocument(t.Context(), nil); err == nil {
		t.Error("empty document should be rejected before any API call")
	}

	huge := make([]byte, MaxDocumentSizeBytes+1)
	if _, err := s.AnalyzeDocument(t.Context(), huge); err == nil {
		t.Error("oversized document should be rejected before any API call")
	}
}
