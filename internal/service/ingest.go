package service

import (
	"context"
	"log"
	"strings"
	"sync/atomic"

	"github.com/lakeworks/ragline/internal/domain"
	"github.com/lakeworks/ragline/internal/jobs"
	"github.com/lakeworks/ragline/internal/registry"
	"github.com/lakeworks/ragline/internal/telemetry"
)

// IngestConfig controls the ingestion pipeline.
type IngestConfig struct {
	// ChunkSize is the target chunk size passed to the chunk source. The
	// unit (characters or tokens) is the source's contract.
	ChunkSize int
	// Workers bounds concurrent embed-and-push fan-out per ingest call.
	Workers int
}

// DefaultIngestConfig returns the pipeline defaults.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		ChunkSize: 500,
		Workers:   4,
	}
}

// IngestResult reports the outcome of one ingestion call. Partial ingestion
// is an accepted outcome; failed chunks are counted, not silently absorbed.
type IngestResult struct {
	ChunksIndexed int
	ChunksFailed  int
}

// IngestService turns one document reference into N indexed vectors:
// registry -> chunk source -> embedding client -> vector index push.
type IngestService struct {
	registry *registry.Registry
	source   ChunkSource
	embedder EmbeddingClient
	index    VectorIndexClient
	pool     *jobs.Pool
	cfg      IngestConfig
}

// NewIngestService creates an IngestService with default configuration.
func NewIngestService(reg *registry.Registry, source ChunkSource, embedder EmbeddingClient, index VectorIndexClient) *IngestService {
	return NewIngestServiceWithConfig(reg, source, embedder, index, DefaultIngestConfig())
}

// NewIngestServiceWithConfig creates an IngestService with explicit configuration.
func NewIngestServiceWithConfig(reg *registry.Registry, source ChunkSource, embedder EmbeddingClient, index VectorIndexClient, cfg IngestConfig) *IngestService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultIngestConfig().ChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultIngestConfig().Workers
	}
	return &IngestService{
		registry: reg,
		source:   source,
		embedder: embedder,
		index:    index,
		pool:     jobs.NewPool(cfg.Workers),
		cfg:      cfg,
	}
}

// Ingest fetches the referenced document, chunks it, embeds each chunk, and
// pushes the records to the vector index. A failure on one chunk does not
// abort the others; if every chunk fails the call fails as a whole.
func (s *IngestService) Ingest(ctx context.Context, documentRef string) (*IngestResult, error) {
	if strings.TrimSpace(documentRef) == "" {
		return nil, domain.ErrMissingDocumentReference
	}

	ctx, span := telemetry.StartSpan(ctx, "pipeline.ingest", telemetry.SpanAttributes{
		Operation:   "ingest",
		DocumentRef: documentRef,
	})
	defer span.End()

	storeID, err := s.registry.Ensure(ctx, registry.KindDocumentStore)
	if err != nil {
		return nil, err
	}
	indexID, err := s.registry.Ensure(ctx, registry.KindVectorIndex)
	if err != nil {
		return nil, err
	}

	chunks, err := s.source.FetchChunks(ctx, storeID, documentRef, s.cfg.ChunkSize)
	if err != nil {
		return nil, domain.NewPipelineErrorWithCause(domain.ErrCodeDocumentFetch, "failed to fetch document", err)
	}
	// Zero chunks means the upstream produced no content; not a no-op.
	if len(chunks) == 0 {
		return nil, domain.ErrDocumentFetch
	}

	var indexed, failed int32
	s.pool.Run(ctx, len(chunks), func(ctx context.Context, i int) {
		if err := s.indexChunk(ctx, indexID, chunks[i]); err != nil {
			atomic.AddInt32(&failed, 1)
			log.Printf("ingest: chunk %d of %q failed: %v", i, documentRef, err)
			return
		}
		atomic.AddInt32(&indexed, 1)
	})

	result := &IngestResult{
		ChunksIndexed: int(atomic.LoadInt32(&indexed)),
		ChunksFailed:  int(atomic.LoadInt32(&failed)),
	}
	if result.ChunksIndexed == 0 {
		err := domain.NewPipelineError(domain.ErrCodeIngestionFailed, "all chunks failed to index")
		span.SetError(err)
		return nil, err
	}
	return result, nil
}

func (s *IngestService) indexChunk(ctx context.Context, indexID, text string) error {
	vector, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return domain.NewPipelineErrorWithCause(domain.ErrCodeEmbedding, "failed to embed chunk", err)
	}

	rec := domain.IndexedRecord{
		Vector:   vector,
		Text:     text,
		Metadata: map[string]string{},
	}
	if err := s.index.Push(ctx, indexID, rec); err != nil {
		return domain.NewPipelineErrorWithCause(domain.ErrCodeInternalError, "failed to push chunk to vector index", err)
	}
	return nil
}
