package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakeworks/ragline/internal/domain"
	"github.com/lakeworks/ragline/internal/registry"
	"github.com/lakeworks/ragline/internal/telemetry"
)

const (
	// DefaultSystemPrompt establishes the assistant's persona.
	DefaultSystemPrompt = "You are an HR assistant providing accurate office-related guidance."
	// DefaultFallbackAnswer is returned when the completion service
	// legitimately produces no answer text.
	DefaultFallbackAnswer = "No answer received."
)

// AnswerConfig controls the retrieval pipeline.
type AnswerConfig struct {
	// TopK bounds the number of nearest neighbors retrieved per query.
	TopK           int
	SystemPrompt   string
	FallbackAnswer string
}

// DefaultAnswerConfig returns the pipeline defaults.
func DefaultAnswerConfig() AnswerConfig {
	return AnswerConfig{
		TopK:           4,
		SystemPrompt:   DefaultSystemPrompt,
		FallbackAnswer: DefaultFallbackAnswer,
	}
}

// AnswerResult is the outcome of one retrieval call.
type AnswerResult struct {
	Answer string
}

// AnswerService turns one query string into one answer string: embedding
// client -> vector index search -> context assembly -> completion client.
type AnswerService struct {
	registry   *registry.Registry
	embedder   EmbeddingClient
	index      VectorIndexClient
	completion CompletionClient
	cfg        AnswerConfig
}

// NewAnswerService creates an AnswerService with default configuration.
func NewAnswerService(reg *registry.Registry, embedder EmbeddingClient, index VectorIndexClient, completion CompletionClient) *AnswerService {
	return NewAnswerServiceWithConfig(reg, embedder, index, completion, DefaultAnswerConfig())
}

// NewAnswerServiceWithConfig creates an AnswerService with explicit configuration.
func NewAnswerServiceWithConfig(reg *registry.Registry, embedder EmbeddingClient, index VectorIndexClient, completion CompletionClient, cfg AnswerConfig) *AnswerService {
	defaults := DefaultAnswerConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = defaults.TopK
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaults.SystemPrompt
	}
	if cfg.FallbackAnswer == "" {
		cfg.FallbackAnswer = defaults.FallbackAnswer
	}
	return &AnswerService{
		registry:   reg,
		embedder:   embedder,
		index:      index,
		completion: completion,
		cfg:        cfg,
	}
}

// Answer retrieves context for the query and forwards it to the completion
// client. An empty search result set degrades to an empty context rather
// than failing the query.
func (s *AnswerService) Answer(ctx context.Context, query string) (*AnswerResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrMissingQuery
	}

	ctx, span := telemetry.StartSpan(ctx, "pipeline.answer", telemetry.SpanAttributes{
		Operation: "answer",
	})
	defer span.End()

	vector, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, domain.NewPipelineErrorWithCause(domain.ErrCodeEmbedding, "failed to embed query", err)
	}

	// Search must not run against an unestablished namespace.
	indexID, ok := s.registry.Lookup(registry.KindVectorIndex)
	if !ok {
		return nil, domain.ErrNamespaceNotReady
	}

	results, err := s.index.Search(ctx, indexID, vector, s.cfg.TopK)
	if err != nil {
		return nil, domain.NewPipelineErrorWithCause(domain.ErrCodeInternalError, "vector search failed", err)
	}

	enriched := assembleContext(results)
	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: s.cfg.SystemPrompt},
		{Role: domain.RoleUser, Content: buildUserPrompt(enriched, query)},
	}

	answer, err := s.completion.Complete(ctx, messages)
	if err != nil {
		return nil, domain.NewPipelineErrorWithCause(domain.ErrCodeCompletion, "completion call failed", err)
	}
	if answer == "" {
		answer = s.cfg.FallbackAnswer
	}
	return &AnswerResult{Answer: answer}, nil
}

// assembleContext joins result texts in ranked order, single-space
// separated. Ranking is the index's contract and is not re-derived here.
func assembleContext(results []domain.SearchResult) string {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Text)
	}
	return strings.Join(texts, " ")
}

func buildUserPrompt(enrichedContext, query string) string {
	return fmt.Sprintf("Using the following context: %s, answer the question: %s.", enrichedContext, query)
}
