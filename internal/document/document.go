// Package document holds the central Document aggregate and the
// reconciliation rules that merge QR code data, LLM classification and LLM
// extraction into one canonical field set.
//
// Stages never mutate a Document in place: each Apply/Postprocess call
// returns a new value, so the classification-before-extraction ordering is
// visible in the data flow rather than hidden in shared state.
package document

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Document is the aggregate for one physical file moving through the intake
// pipeline.
type Document struct {
	// ID is the storage path of the file. Stable, set on creation.
	ID string

	// URL is an optional external reference, echoed back to callers.
	URL string

	// Stream holds the raw file bytes, set once on load.
	Stream []byte

	// Text holds one entry per page. Image-only pages carry an empty
	// string placeholder. After OCR enrichment the slice is replaced
	// wholesale with a single OCR-derived element.
	Text []string

	// IsImage is set during type detection.
	IsImage bool

	// QRInfo maps SAF-T PT field codes to values. Empty when no valid QR
	// code was found.
	QRInfo map[string]string

	// DocType is the 2-letter document type code, set by QR or by
	// classification.
	DocType string

	// Valid is the authoritative validity flag.
	Valid bool

	// Fields maps canonical field names to values. This is the single
	// source of truth for downstream consumers.
	Fields map[string]any

	// Comments collects free-text notes, append-only.
	Comments []string
}

// New creates a Document with only its identity set.
func New(id, url string) Document {
	return Document{
		ID:       id,
		URL:      url,
		Text:     []string{},
		QRInfo:   map[string]string{},
		Fields:   map[string]any{},
		Comments: []string{},
	}
}

// HasQR reports whether a valid QR code was attached to the document.
func (d Document) HasQR() bool {
	return len(d.QRInfo) > 0
}

// clone returns a deep enough copy that stage functions can modify freely.
func (d Document) clone() Document {
	d.Text = slices.Clone(d.Text)
	d.QRInfo = maps.Clone(d.QRInfo)
	d.Fields = maps.Clone(d.Fields)
	d.Comments = slices.Clone(d.Comments)
	if d.QRInfo == nil {
		d.QRInfo = map[string]string{}
	}
	if d.Fields == nil {
		d.Fields = map[string]any{}
	}
	return d
}

// WithText returns a copy of the document with its page text replaced.
func (d Document) WithText(text []string) Document {
	out := d.clone()
	out.Text = slices.Clone(text)
	return out
}

// WithQRCodeData returns a copy of the document enriched with validated QR
// code data. The QR document type (code D) becomes authoritative and the
// document is considered valid.
func (d Document) WithQRCodeData(qr map[string]string) Document {
	out := d.clone()
	out.QRInfo = maps.Clone(qr)
	out.DocType = qr[qrCodeDocumentType]
	out.Valid = true
	return out
}

// Classification is the fixed-shape view of a classification completion.
// Absent keys parse to empty strings; the reconciler decides what is
// authoritative.
type Classification struct {
	ValidDocument   string
	OriginalCopy    string
	HasATCUD        string
	SupplierName    string
	SupplierVAT     string
	AcquirerName    string
	AcquirerVAT     string
	SupplierCountry string
	DocumentType    string
	DocumentNumber  string
	Comments        string

	// Raw keeps the parsed completion for the classification_json output.
	Raw map[string]any
}

// ClassificationFromCompletion builds a Classification from a parsed LLM
// completion mapping.
func ClassificationFromCompletion(m map[string]any) Classification {
	return Classification{
		ValidDocument:   getString(m, "valid_document"),
		OriginalCopy:    getString(m, "original_copy"),
		HasATCUD:        getString(m, "has_atcud"),
		SupplierName:    getString(m, "supplier_name"),
		SupplierVAT:     getString(m, "supplier_vat"),
		AcquirerName:    getString(m, "acquirer_name"),
		AcquirerVAT:     getString(m, "acquirer_vat"),
		SupplierCountry: getString(m, "supplier_country"),
		DocumentType:    getString(m, "document_type"),
		DocumentNumber:  getString(m, "document_number"),
		Comments:        getString(m, "classification_comments"),
		Raw:             m,
	}
}

// ApplyClassification reconciles a classification completion into the
// document fields and returns the updated document.
//
// When a QR code is present it is ground truth for the financial identity
// fields, no matter what the model claimed: the acquirer VAT is the QR
// country code concatenated with the acquirer NIF, the supplier is a
// Portuguese fiscal entity ("PT" prefix), and document type and number come
// from codes D and G. Party names and comments always come from the model,
// the QR never carries them.
func ApplyClassification(d Document, c Classification) Document {
	out := d.clone()

	out.Valid = c.ValidDocument == "Y"
	out.Fields["valid_document"] = c.ValidDocument
	out.Fields["supplier_name"] = c.SupplierName
	out.Fields["acquirer_name"] = c.AcquirerName
	out.Comments = append(out.Comments, c.Comments)
	out.Fields["classification_comments"] = c.Comments

	if out.HasQR() {
		out.Fields["acquirer_vat"] = out.QRInfo[qrCodeAcquirerCountry] + out.QRInfo[qrCodeAcquirerNIF]
		out.Fields["supplier_vat"] = "PT" + out.QRInfo[qrCodeSupplierNIF]
		out.Fields["supplier_country"] = "PT"

		out.DocType = out.QRInfo[qrCodeDocumentType]
		out.Fields["document_type"] = out.QRInfo[qrCodeDocumentType]
		out.Fields["document_number"] = out.QRInfo[qrCodeDocumentNumber]
		out.Fields["has_atcud"] = "Y"
	} else {
		out.Fields["supplier_vat"] = c.SupplierVAT
		out.Fields["acquirer_vat"] = c.AcquirerVAT
		out.Fields["supplier_country"] = c.SupplierCountry
		out.DocType = c.DocumentType
		out.Fields["document_type"] = c.DocumentType
		out.Fields["document_number"] = c.DocumentNumber
		out.Fields["has_atcud"] = c.HasATCUD
	}

	return out
}

// PostprocessExtraction normalizes an extraction completion against the
// canonical field schema and merges it into the document fields. It returns
// the updated document and the normalized extraction output.
//
// Rules, in order:
//  1. Both missing-fields lists exist in the output, defaulting to empty.
//  2. Every canonical field name is present: absent fields are backfilled
//     from the QR translation when available, otherwise set to "".
//  3. The missing sentinel is rewritten to "" and must already be declared
//     in one of the missing-fields lists, otherwise the completion violated
//     its contract and an error is returned.
//  4. Top-level numeric values are coerced to strings; the output schema is
//     string-typed throughout.
//  5. The three parallel item arrays collapse into invoiced_items records.
//
// A QR value never overrides a value the model did return; it only fills
// absences.
func PostprocessExtraction(d Document, completion map[string]any) (Document, map[string]any, error) {
	out := maps.Clone(completion)
	if out == nil {
		out = map[string]any{}
	}

	var qrFields map[string]string
	if d.HasQR() {
		var err error
		qrFields, err = TranslateQRToFields(d.QRInfo)
		if err != nil {
			return d, nil, err
		}
	}

	missingMandatory := toStringSlice(out["missing_mandatory_fields"])
	missingOptional := toStringSlice(out["missing_optional_fields"])
	out["missing_mandatory_fields"] = missingMandatory
	out["missing_optional_fields"] = missingOptional

	for _, field := range AllExtractionFields {
		v, present := out[field]
		if !present {
			if qrValue, inQR := qrFields[field]; inQR {
				out[field] = qrValue
			} else {
				// Not defined anywhere, likely not applicable to this
				// document type. Keep the schema stable regardless.
				out[field] = ""
			}
			continue
		}
		if v == MissingSentinel {
			out[field] = ""
			if !slices.Contains(missingMandatory, field) && !slices.Contains(missingOptional, field) {
				return d, nil, fmt.Errorf("%w: %q", ErrUndeclaredMissingField, field)
			}
		}
	}

	for k, v := range out {
		if f, ok := v.(float64); ok {
			out[k] = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}

	out = FormatInvoiceItems(out)

	updated := d.clone()
	for k, v := range out {
		updated.Fields[k] = v
	}
	return updated, out, nil
}

// getString safely extracts a string value from a parsed completion.
func getString(m map[string]any, key string) string {
	if value, exists := m[key]; exists && value != nil {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}

// toStringSlice converts a parsed JSON array into a string slice, dropping
// non-string entries. A nil or non-array value yields an empty slice.
func toStringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return slices.Clone(ss)
		}
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
