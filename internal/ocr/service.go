// Package ocr provides document text extraction using Google Document AI.
//
// The OCR processor returns per-page text plus any barcodes it detected on
// each page. The intake pipeline only cares about QR code barcodes: they may
// carry SAF-T PT tax data that outranks anything a language model says.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//   - GOOGLE_CLOUD_PROJECT: Google Cloud project ID
//   - GOOGLE_CLOUD_LOCATION: Processing location (e.g., "us", "eu")
//   - DOCUMENT_AI_PROCESSOR_ID: OCR processor ID (barcode detection enabled)
//
// Document AI API Limitations:
//   - Maximum file size: 20MB for synchronous processing
//   - Supported formats: PDF, TIFF, GIF, JPEG, PNG, BMP, WEBP
package ocr

import (
	"context"
	"time"
)

// KindQRCode is the barcode format Document AI reports for QR codes. Other
// barcode kinds (EAN, Code128, ...) appear on invoices but never carry
// SAF-T PT data.
const KindQRCode = "QR_CODE"

// Service defines the interface for OCR document analysis.
type Service interface {
	// AnalyzeDocument extracts text and barcodes from raw document bytes.
	AnalyzeDocument(ctx context.Context, data []byte) (*AnalyzeResult, error)
}

// AnalyzeResult contains the outcome of one OCR analysis.
type AnalyzeResult struct {
	// Content is the full document text in reading order.
	Content string `json:"content"`

	// Pages holds per-page details in document order.
	Pages []Page `json:"pages"`

	// ProcessedAt is when the analysis completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long the analysis took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}

// Page is one analyzed page.
type Page struct {
	// Number is the 1-based page number.
	Number int `json:"number"`

	// Text is the page text in reading order.
	Text string `json:"text"`

	// Barcodes lists the barcodes detected on the page, in document order.
	Barcodes []Barcode `json:"barcodes,omitempty"`
}

// Barcode is one detected barcode payload.
type Barcode struct {
	// Kind is the barcode format (e.g., KindQRCode).
	Kind string `json:"kind"`

	// Payload is the decoded barcode value.
	Payload string `json:"payload"`
}

// QRCodePayloads returns the payloads of all QR code barcodes in document
// order, pages first, barcodes within a page second.
func (r *AnalyzeResult) QRCodePayloads() []string {
	var payloads []string
	for _, page := range r.Pages {
		for _, barcode := range page.Barcodes {
			if barcode.Kind == KindQRCode {
				payloads = append(payloads, barcode.Payload)
			}
		}
	}
	return payloads
}
