package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lakeworks/ragline/internal/domain"
	"github.com/lakeworks/ragline/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Ingest(ctx context.Context, documentRef string) (*service.IngestResult, error) {
	args := m.Called(ctx, documentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

func TestIngestHandler_Ingest_Success(t *testing.T) {
	mockSvc := new(MockIngestService)
	handler := NewIngestHandler(mockSvc)

	mockSvc.On("Ingest", mock.Anything, "https://example.com/handbook").
		Return(&service.IngestResult{ChunksIndexed: 3}, nil)

	body := `{"document_reference":"https://example.com/handbook"}`
	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["data"]["chunks_indexed"])
	assert.Equal(t, float64(0), resp["data"]["chunks_failed"])
	mockSvc.AssertExpectations(t)
}

func TestIngestHandler_Ingest_InvalidBody(t *testing.T) {
	mockSvc := new(MockIngestService)
	handler := NewIngestHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestIngestHandler_Ingest_MissingReference(t *testing.T) {
	mockSvc := new(MockIngestService)
	handler := NewIngestHandler(mockSvc)

	mockSvc.On("Ingest", mock.Anything, "").Return(nil, domain.ErrMissingDocumentReference)

	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestHandler_Ingest_PipelineFailure(t *testing.T) {
	mockSvc := new(MockIngestService)
	handler := NewIngestHandler(mockSvc)

	mockSvc.On("Ingest", mock.Anything, "https://example.com/broken").
		Return(nil, domain.ErrIngestionFailed)

	body := `{"document_reference":"https://example.com/broken"}`
	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "INGESTION_FAILED")
}
