package models

// ClassificationResult is the response envelope returned after a document
// has been read and classified. Field names follow the stored artifact
// layout so clients can correlate envelopes with blobs.
type ClassificationResult struct {
	FilePath string `json:"file_path"`
	FileURL  string `json:"file_url"`

	// Text is the per-page document text.
	Text []string `json:"text"`

	// ScannedCopy is "Y" when the document needed OCR, "N" otherwise.
	ScannedCopy string `json:"scanned_copy"`

	// OriginalCopy is the classifier's judgment of whether the document is
	// an original or a certified duplicate, "N" for a reprint.
	OriginalCopy string `json:"original_copy"`

	// HasATCUD is "Y" when the document carries an ATCUD code, taken from
	// the QR code when one validates and from the classifier otherwise.
	HasATCUD string `json:"has_atcud"`

	SupplierCountry string `json:"supplier_country"`
	SupplierVAT     string `json:"supplier_vat"`
	SupplierName    string `json:"supplier_name"`
	AcquirerVAT     string `json:"acquirer_vat"`
	AcquirerName    string `json:"acquirer_name"`
	DocumentType    string `json:"document_type"`
	DocumentNumber  string `json:"document_number"`

	// QRCodeData is the decoded QR payload keyed by SAF-T PT field code.
	QRCodeData map[string]string `json:"qr_code_data"`

	// ValidDocument reports whether the document was recognized as a tax
	// relevant document.
	ValidDocument bool `json:"valid_document"`

	// ClassificationNotes is the classifier's remark from this run, the
	// most recent entry in the document's comment trail.
	ClassificationNotes string `json:"classification_notes"`

	// ClassificationJSON is the raw parsed classifier output.
	ClassificationJSON map[string]any `json:"classification_json"`

	// AllFields is the merged field map after reconciliation.
	AllFields map[string]any `json:"all_fields"`
}

// ExtractionResult is the response envelope returned after field extraction.
type ExtractionResult struct {
	FileURL  string `json:"file_url"`
	FilePath string `json:"file_path"`

	// ExtractedFields is the normalized field map produced by this run.
	ExtractedFields map[string]any `json:"extracted_fields"`

	// MissingMandatoryFields lists mandatory fields the extractor could not
	// find in the document.
	MissingMandatoryFields []string `json:"missing_mandatory_fields"`

	// MissingOptionalFields lists optional fields absent from the document.
	MissingOptionalFields []string `json:"missing_optional_fields"`

	// AllFields is the full field map accumulated across pipeline stages.
	AllFields map[string]any `json:"all_fields"`
}

// DocumentListing is the response envelope for document listing requests.
type DocumentListing struct {
	Prefix    string   `json:"prefix"`
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}
