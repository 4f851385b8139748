package service

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledEmbedder wraps an EmbeddingClient with a token-bucket limiter so
// chunk fan-out cannot overwhelm the embedding provider.
type ThrottledEmbedder struct {
	inner   EmbeddingClient
	limiter *rate.Limiter
}

// NewThrottledEmbedder creates a rate-limited embedder. Non-positive rps
// disables throttling.
func NewThrottledEmbedder(inner EmbeddingClient, rps float64, burst int) *ThrottledEmbedder {
	var limiter *rate.Limiter
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &ThrottledEmbedder{inner: inner, limiter: limiter}
}

// GenerateEmbedding waits for limiter capacity, then delegates.
func (t *ThrottledEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return t.inner.GenerateEmbedding(ctx, text)
}
