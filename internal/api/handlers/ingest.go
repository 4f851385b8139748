package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lakeworks/ragline/internal/api"
	"github.com/lakeworks/ragline/internal/service"
)

// IngestService is the ingestion pipeline as seen by the HTTP layer.
type IngestService interface {
	Ingest(ctx context.Context, documentRef string) (*service.IngestResult, error)
}

// IngestHandler serves the document ingestion endpoint.
type IngestHandler struct {
	svc IngestService
}

// NewIngestHandler creates an IngestHandler.
func NewIngestHandler(svc IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type IngestRequest struct {
	DocumentReference string `json:"document_reference"`
}

type IngestResponse struct {
	ChunksIndexed int `json:"chunks_indexed"`
	ChunksFailed  int `json:"chunks_failed"`
}

// Ingest handles POST /documents.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Ingest(r.Context(), req.DocumentReference)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, IngestResponse{
		ChunksIndexed: result.ChunksIndexed,
		ChunksFailed:  result.ChunksFailed,
	})
}
