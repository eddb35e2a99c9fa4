package llm

import (
	"errors"
	"fmt"
)

// Common completion errors
var (
	// ErrEmptyCompletion is returned when the API answered without any
	// choices.
	ErrEmptyCompletion = errors.New("completion response contained no choices")

	// ErrMissingCredentials is returned when the Azure OpenAI endpoint or
	// key is not configured.
	ErrMissingCredentials = errors.New("missing Azure OpenAI credentials")
)

// CompletionError wraps errors with context about the completion call that
// failed.
type CompletionError struct {
	// Op is the operation that failed (e.g., "Complete").
	Op string

	// Process names the pipeline stage (Classification or Extraction).
	Process string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CompletionError) Error() string {
	if e.Process != "" {
		return fmt.Sprintf("llm: %s failed (%s): %v", e.Op, e.Process, e.Err)
	}
	return fmt.Sprintf("llm: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *CompletionError) Unwrap() error {
	return e.Err
}
