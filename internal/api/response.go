package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lakeworks/ragline/internal/domain"
)

// SuccessResponse wraps successful API responses
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Success writes a successful JSON response
func Success(w http.ResponseWriter, status int, data interface{}) {
	JSON(w, status, SuccessResponse{Data: data})
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// PipelineErrorToHTTP maps pipeline errors to HTTP status codes. Validation
// failures are the caller's fault; a query before any ingestion is a
// request-sequencing conflict; everything else is a remote or processing
// failure.
func PipelineErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var perr *domain.PipelineError
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError
	}

	switch perr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNamespaceNotReady:
		return http.StatusConflict
	case domain.ErrCodeResourceCreation,
		domain.ErrCodeDocumentFetch,
		domain.ErrCodeEmbedding,
		domain.ErrCodeIngestionFailed,
		domain.ErrCodeCompletion,
		domain.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error type
func HandleError(w http.ResponseWriter, err error) {
	status := PipelineErrorToHTTP(err)
	Error(w, status, err.Error())
}
