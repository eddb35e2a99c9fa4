package document

import "errors"

// Common document processing errors
var (
	// ErrUnsupportedFileType is returned when the raw bytes are neither a
	// PDF nor an image. Fatal for the document, never retried.
	ErrUnsupportedFileType = errors.New("unsupported file type (valid types: PDF, JPEG, PNG)")

	// ErrInvalidIssueDate is returned when the QR issue date (code F) is
	// absent or not an 8-digit YYYYMMDD value. Callers that validated the
	// QR payload first never see this.
	ErrInvalidIssueDate = errors.New("QR issue date is missing or not in YYYYMMDD format")

	// ErrUndeclaredMissingField signals an upstream contract violation: the
	// model marked a field with the missing sentinel without declaring it in
	// either missing-fields list. This must fail loudly, it indicates a
	// prompt/response contract bug rather than a bad document.
	ErrUndeclaredMissingField = errors.New("field flagged as missing but not declared in a missing-fields list")
)
