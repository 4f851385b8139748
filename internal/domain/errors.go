package domain

import (
	"errors"
	"fmt"
)

// PipelineError represents a pipeline-stage error
type PipelineError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches on the error code so sentinel errors compare against wrapped
// instances carrying a cause.
func (e *PipelineError) Is(target error) bool {
	var other *PipelineError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewPipelineError creates a new PipelineError
func NewPipelineError(code, message string) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewPipelineErrorWithCause creates a new PipelineError with an underlying cause
func NewPipelineErrorWithCause(code, message string, err error) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Pipeline error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeResourceCreation  = "RESOURCE_CREATION_ERROR"
	ErrCodeDocumentFetch     = "DOCUMENT_FETCH_ERROR"
	ErrCodeEmbedding         = "EMBEDDING_ERROR"
	ErrCodeIngestionFailed   = "INGESTION_FAILED"
	ErrCodeNamespaceNotReady = "NAMESPACE_NOT_READY"
	ErrCodeCompletion        = "COMPLETION_ERROR"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingDocumentReference = NewPipelineError(ErrCodeValidation, "document_reference is required")
	ErrMissingQuery             = NewPipelineError(ErrCodeValidation, "query is required")
)

// Resource errors
var (
	ErrResourceCreation  = NewPipelineError(ErrCodeResourceCreation, "namespace creation failed")
	ErrNamespaceNotReady = NewPipelineError(ErrCodeNamespaceNotReady, "vector index namespace not established, ingest a document first")
)

// Pipeline stage errors
var (
	ErrDocumentFetch   = NewPipelineError(ErrCodeDocumentFetch, "document fetch returned no content")
	ErrEmbedding       = NewPipelineError(ErrCodeEmbedding, "embedding generation failed")
	ErrIngestionFailed = NewPipelineError(ErrCodeIngestionFailed, "all chunks failed to index")
	ErrCompletion      = NewPipelineError(ErrCodeCompletion, "completion call returned no usable answer")
)
