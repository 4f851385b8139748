package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lakeworks/ragline/internal/api"
	"github.com/lakeworks/ragline/internal/service"
)

// AnswerService is the retrieval pipeline as seen by the HTTP layer.
type AnswerService interface {
	Answer(ctx context.Context, query string) (*service.AnswerResult, error)
}

// QueryHandler serves the question-answering endpoint.
type QueryHandler struct {
	svc AnswerService
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(svc AnswerService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Answer string `json:"answer"`
}

// Chat handles POST /chat.
func (h *QueryHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Answer(r.Context(), req.Query)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, QueryResponse{Answer: result.Answer})
}
