// Package pipeline orchestrates the document intake flow: load, read,
// classify, extract. Each stage takes a Document value and returns an
// updated one, persisting its artifacts before the next stage runs.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"docintake/internal/document"
	"docintake/internal/llm"
	"docintake/internal/logger"
	"docintake/internal/ocr"
	"docintake/internal/storage"
	"docintake/pkg/models"
)

// scannedTextThreshold is the native-text length below which a document is
// reported as a scanned copy. Scans sometimes carry a few stray characters
// in their text layer, so the check is a threshold rather than an emptiness
// test.
const scannedTextThreshold = 100

// Store is the artifact persistence contract the pipeline needs. A nil
// Store disables persistence, which lets the CLI run against local files
// without bucket configuration.
type Store interface {
	Read(ctx context.Context, category storage.Category, name string) ([]byte, error)
	WriteJSON(ctx context.Context, category storage.Category, name string, v any) error
	ReadJSON(ctx context.Context, category storage.Category, name string, v any) error
	List(ctx context.Context, category storage.Category, prefix string) ([]string, error)
}

// Service runs intake stages over documents.
type Service struct {
	ocr        ocr.Service
	classifier llm.ChatCompleter
	extractor  llm.ChatCompleter
	store      Store
	log        zerolog.Logger
}

// NewService wires the pipeline collaborators. store may be nil.
func NewService(ocrService ocr.Service, classifier, extractor llm.ChatCompleter, store Store) *Service {
	return &Service{
		ocr:        ocrService,
		classifier: classifier,
		extractor:  extractor,
		store:      store,
		log:        logger.WithComponent("pipeline"),
	}
}

// LoadDocument rehydrates a document from blob storage. The raw stream is
// required; text, QR data, fields and comments are restored when earlier
// stages already produced them, so extraction can run without repeating
// classification.
func (s *Service) LoadDocument(ctx context.Context, path, url string) (document.Document, error) {
	d := document.New(path, url)

	if s.store == nil {
		return d, fmt.Errorf("pipeline: LoadDocument requires blob storage")
	}

	stream, err := s.store.Read(ctx, storage.CategoryStream, path)
	if err != nil {
		return d, err
	}
	d.Stream = stream

	var text []string
	if err := s.store.ReadJSON(ctx, storage.CategoryText, path, &text); err == nil {
		d = d.WithText(text)
	}

	var qrInfo map[string]string
	if err := s.store.ReadJSON(ctx, storage.CategoryQR, path, &qrInfo); err == nil && len(qrInfo) > 0 {
		d = d.WithQRCodeData(qrInfo)
	}

	var fields map[string]any
	if err := s.store.ReadJSON(ctx, storage.CategoryFields, path, &fields); err == nil {
		for k, v := range fields {
			d.Fields[k] = v
		}
		if docType, ok := fields["document_type"].(string); ok && docType != "" {
			d.DocType = docType
		}
		if valid, ok := fields["valid_document"].(string); ok {
			d.Valid = valid == "Y"
		}
	}

	var comments []string
	if err := s.store.ReadJSON(ctx, storage.CategoryComments, path, &comments); err == nil {
		d.Comments = comments
	}

	return d, nil
}

// LoadDocumentFromFile creates a document from a local file.
func (s *Service) LoadDocumentFromFile(path, url string) (document.Document, error) {
	d := document.New(path, url)

	stream, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("pipeline: reading %s: %w", path, err)
	}
	d.Stream = stream
	return d, nil
}

// ReadDocument detects the content type, notes whether the document is a
// scanned copy and enriches it with OCR. Every document goes through OCR,
// not just scans: QR codes are printed as images, so even native PDFs need
// barcode detection, and the OCR text supersedes the native text layer
// wholesale. The first payload that validates as a SAF-T PT QR code is
// attached to the document.
func (s *Service) ReadDocument(ctx context.Context, d document.Document) (document.Document, error) {
	out, err := document.DetectContent(d)
	if err != nil {
		return d, err
	}

	nativeChars := 0
	for _, page := range out.Text {
		nativeChars += len(page)
	}
	if nativeChars < scannedTextThreshold {
		out.Fields["scanned_copy"] = "Y"
	} else {
		out.Fields["scanned_copy"] = "N"
	}

	result, err := s.ocr.AnalyzeDocument(ctx, out.Stream)
	if err != nil {
		return d, err
	}
	out = out.WithText([]string{result.Content})

	if qr := document.FirstValidQRCode(result.QRCodePayloads()); len(qr) > 0 {
		out = out.WithQRCodeData(qr)
	}

	s.log.Info().
		Str("document", out.ID).
		Str("scanned", fieldString(out, "scanned_copy")).
		Bool("qr_code", out.HasQR()).
		Msg("Document read")

	return out, nil
}

// ClassifyDocument runs the classification completion and reconciles it
// into the document fields.
func (s *Service) ClassifyDocument(ctx context.Context, d document.Document) (document.Document, document.Classification, error) {
	messages := llm.BuildClassificationPrompt(joinText(d.Text), d.HasQR(), d.QRInfo)

	response, err := s.classifier.Complete(ctx, messages, "Classification")
	if err != nil {
		return d, document.Classification{}, err
	}

	completion := llm.ParseResponseJSON(response)
	classification := document.ClassificationFromCompletion(completion)

	return document.ApplyClassification(d, classification), classification, nil
}

// ReadAndClassify runs the read and classification stages, persisting each
// stage's artifacts before the next one starts, and returns the response
// envelope.
func (s *Service) ReadAndClassify(ctx context.Context, d document.Document) (*models.ClassificationResult, error) {
	d, err := s.ReadDocument(ctx, d)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.WriteJSON(ctx, storage.CategoryText, d.ID, d.Text); err != nil {
			return nil, err
		}
		if err := s.store.WriteJSON(ctx, storage.CategoryQR, d.ID, d.QRInfo); err != nil {
			return nil, err
		}
	}

	d, classification, err := s.ClassifyDocument(ctx, d)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.WriteJSON(ctx, storage.CategoryFields, d.ID, d.Fields); err != nil {
			return nil, err
		}
		if err := s.store.WriteJSON(ctx, storage.CategoryComments, d.ID, d.Comments); err != nil {
			return nil, err
		}
	}

	notes := ""
	if len(d.Comments) > 0 {
		notes = d.Comments[len(d.Comments)-1]
	}

	return &models.ClassificationResult{
		FilePath:            d.ID,
		FileURL:             d.URL,
		Text:                d.Text,
		ScannedCopy:         fieldString(d, "scanned_copy"),
		OriginalCopy:        classification.OriginalCopy,
		HasATCUD:            fieldString(d, "has_atcud"),
		SupplierCountry:     fieldString(d, "supplier_country"),
		SupplierVAT:         fieldString(d, "supplier_vat"),
		SupplierName:        fieldString(d, "supplier_name"),
		AcquirerVAT:         fieldString(d, "acquirer_vat"),
		AcquirerName:        fieldString(d, "acquirer_name"),
		DocumentType:        d.DocType,
		DocumentNumber:      fieldString(d, "document_number"),
		QRCodeData:          d.QRInfo,
		ValidDocument:       d.Valid,
		ClassificationNotes: notes,
		ClassificationJSON:  classification.Raw,
		AllFields:           d.Fields,
	}, nil
}

// ExtractFields runs the extraction completion over an already classified
// document, normalizes the output against the canonical schema and persists
// the merged fields.
func (s *Service) ExtractFields(ctx context.Context, d document.Document) (*models.ExtractionResult, error) {
	messages := llm.BuildExtractionPrompt(joinText(d.Text), d.DocType, d.HasQR())

	response, err := s.extractor.Complete(ctx, messages, "Extraction")
	if err != nil {
		return nil, err
	}

	completion := llm.ParseResponseJSON(response)
	d, extracted, err := document.PostprocessExtraction(d, completion)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.WriteJSON(ctx, storage.CategoryFields, d.ID, d.Fields); err != nil {
			return nil, err
		}
	}

	missingMandatory, _ := extracted["missing_mandatory_fields"].([]string)
	missingOptional, _ := extracted["missing_optional_fields"].([]string)

	return &models.ExtractionResult{
		FileURL:                d.URL,
		FilePath:               d.ID,
		ExtractedFields:        extracted,
		MissingMandatoryFields: missingMandatory,
		MissingOptionalFields:  missingOptional,
		AllFields:              d.Fields,
	}, nil
}

// ProcessDocument runs the full pipeline over one stored document.
func (s *Service) ProcessDocument(ctx context.Context, path, url string) (*models.ExtractionResult, error) {
	d, err := s.LoadDocument(ctx, path, url)
	if err != nil {
		return nil, err
	}

	if _, err := s.ReadAndClassify(ctx, d); err != nil {
		return nil, err
	}

	// Rehydrate so extraction sees the persisted classification state
	d, err = s.LoadDocument(ctx, path, url)
	if err != nil {
		return nil, err
	}

	return s.ExtractFields(ctx, d)
}

// ProcessBatch runs the full pipeline over many stored documents with
// bounded concurrency. The first failure cancels the remaining work.
func (s *Service) ProcessBatch(ctx context.Context, paths []string, concurrency int) ([]*models.ExtractionResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*models.ExtractionResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			result, err := s.ProcessDocument(gctx, path, "")
			if err != nil {
				return fmt.Errorf("processing %s: %w", path, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListDocuments returns the stored document names under the given prefix.
func (s *Service) ListDocuments(ctx context.Context, prefix string) (*models.DocumentListing, error) {
	if s.store == nil {
		return nil, fmt.Errorf("pipeline: ListDocuments requires blob storage")
	}

	names, err := s.store.List(ctx, storage.CategoryStream, prefix)
	if err != nil {
		return nil, err
	}

	return &models.DocumentListing{
		Prefix:    prefix,
		Documents: names,
		Count:     len(names),
	}, nil
}

func joinText(pages []string) string {
	return strings.Join(pages, "\n")
}

func fieldString(d document.Document, key string) string {
	if v, ok := d.Fields[key].(string); ok {
		return v
	}
	return ""
}
