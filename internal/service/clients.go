package service

import (
	"context"

	"github.com/lakeworks/ragline/internal/domain"
)

// EmbeddingClient converts text into a fixed-dimension vector.
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkSource fetches a document by reference and returns it divided into
// bounded-size text units. The chunk-size unit (characters or tokens) is the
// source's contract.
type ChunkSource interface {
	FetchChunks(ctx context.Context, storeID, reference string, chunkSize int) ([]string, error)
}

// VectorIndexClient stores indexed records under a namespace and answers
// nearest-neighbor queries, ranked highest similarity first.
type VectorIndexClient interface {
	Push(ctx context.Context, indexID string, rec domain.IndexedRecord) error
	Search(ctx context.Context, indexID string, vector []float32, topK int) ([]domain.SearchResult, error)
}

// CompletionClient generates an answer from an ordered conversation.
type CompletionClient interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}
