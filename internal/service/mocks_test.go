package service

import (
	"context"

	"github.com/lakeworks/ragline/internal/domain"
	"github.com/lakeworks/ragline/internal/registry"
	"github.com/stretchr/testify/mock"
)

// MockChunkSource is a mock implementation of ChunkSource
type MockChunkSource struct {
	mock.Mock
}

func (m *MockChunkSource) FetchChunks(ctx context.Context, storeID, reference string, chunkSize int) ([]string, error) {
	args := m.Called(ctx, storeID, reference, chunkSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEmbeddingClient is a mock implementation of EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockVectorIndex is a mock implementation of VectorIndexClient
type MockVectorIndex struct {
	mock.Mock
}

func (m *MockVectorIndex) Push(ctx context.Context, indexID string, rec domain.IndexedRecord) error {
	args := m.Called(ctx, indexID, rec)
	return args.Error(0)
}

func (m *MockVectorIndex) Search(ctx context.Context, indexID string, vector []float32, topK int) ([]domain.SearchResult, error) {
	args := m.Called(ctx, indexID, vector, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchResult), args.Error(1)
}

// MockCompletionClient is a mock implementation of CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

// newTestRegistry returns a registry whose creators return fixed identifiers
// and report how often each was invoked through the returned counters.
func newTestRegistry() (*registry.Registry, *int, *int) {
	storeCreates := 0
	indexCreates := 0
	reg := registry.New()
	reg.Register(registry.KindDocumentStore, func(ctx context.Context) (string, error) {
		storeCreates++
		return "dl-test", nil
	})
	reg.Register(registry.KindVectorIndex, func(ctx context.Context) (string, error) {
		indexCreates++
		return "vl-test", nil
	})
	return reg, &storeCreates, &indexCreates
}
