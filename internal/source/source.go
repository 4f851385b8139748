// Package source provides the local chunk-source backend: it fetches
// documents directly (HTTP or S3) and chunks them in-process, standing in
// for the remote document-store service.
package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/lakeworks/ragline/internal/service"
)

// Fetcher retrieves the raw text of a document by reference.
type Fetcher interface {
	Fetch(ctx context.Context, reference string) (string, error)
}

// LocalSource fetches and chunks documents without a remote document store.
type LocalSource struct {
	http *HTTPFetcher
	s3   Fetcher
}

// NewLocalSource creates a LocalSource. s3 may be nil when S3 is not
// configured; s3:// references then fail with a clear error.
func NewLocalSource(httpFetcher *HTTPFetcher, s3 Fetcher) *LocalSource {
	if httpFetcher == nil {
		httpFetcher = NewHTTPFetcher()
	}
	return &LocalSource{http: httpFetcher, s3: s3}
}

// CreateNamespace mints a process-local document-store identifier. The local
// source holds no remote state, so creation is just an identifier.
func (s *LocalSource) CreateNamespace(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

// FetchChunks fetches the referenced document and splits it into chunks of
// at most chunkSize characters. The storeID parameter is part of the chunk
// source contract but carries no remote state for the local backend.
func (s *LocalSource) FetchChunks(ctx context.Context, storeID, reference string, chunkSize int) ([]string, error) {
	u, err := url.Parse(reference)
	if err != nil {
		return nil, fmt.Errorf("invalid document reference: %w", err)
	}

	var text string
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		text, err = s.http.Fetch(ctx, reference)
	case "s3":
		if s.s3 == nil {
			return nil, fmt.Errorf("s3 reference %q but S3 storage is not configured", reference)
		}
		text, err = s.s3.Fetch(ctx, reference)
	default:
		return nil, fmt.Errorf("unsupported document reference scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	cfg := service.ChunkConfig{
		MaxChars: chunkSize,
		MinChars: chunkSize / 3,
	}
	return service.ChunkText(text, cfg), nil
}
