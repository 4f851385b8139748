package lake

import (
	"context"

	"github.com/lakeworks/ragline/internal/domain"
)

// VectorIndex is the client for the remote vector-index service. It creates
// namespaces, generates embeddings, stores indexed records, and answers
// nearest-neighbor queries.
type VectorIndex struct {
	c *Client
}

// NewVectorIndex creates a vector-index client on the shared transport.
func NewVectorIndex(c *Client) *VectorIndex {
	return &VectorIndex{c: c}
}

type vectorIndexCreateResponse struct {
	VectorIndexID string `json:"vector_index_id"`
}

// Create provisions a new vector-index namespace and returns its identifier.
func (v *VectorIndex) Create(ctx context.Context) (string, error) {
	var resp vectorIndexCreateResponse
	if err := v.c.post(ctx, "/vector-index/create", struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.VectorIndexID, nil
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Vector []float32 `json:"vector"`
}

// GenerateEmbedding converts text to a fixed-dimension vector via the
// service's embedding endpoint. All vectors in one namespace share one
// dimensionality; the service owns that invariant.
func (v *VectorIndex) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	var resp embedResponse
	if err := v.c.post(ctx, "/vector-index/embed", embedRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	return resp.Vector, nil
}

type vectorPushRequest struct {
	Vector        []float32         `json:"vector"`
	VectorIndexID string            `json:"vector_index_id"`
	DocumentText  string            `json:"document_text"`
	VectorType    string            `json:"vector_type"`
	Metadata      map[string]string `json:"metadata"`
}

// Push stores an indexed record under the given namespace. Each push is its
// own atomic unit as seen by the index.
func (v *VectorIndex) Push(ctx context.Context, indexID string, rec domain.IndexedRecord) error {
	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	req := vectorPushRequest{
		Vector:        rec.Vector,
		VectorIndexID: indexID,
		DocumentText:  rec.Text,
		VectorType:    "text",
		Metadata:      metadata,
	}
	return v.c.post(ctx, "/vector-index/push", req, nil)
}

type vectorSearchRequest struct {
	Vector        []float32 `json:"vector"`
	VectorIndexID string    `json:"vector_index_id"`
	VectorType    string    `json:"vector_type"`
	TopK          int       `json:"top_k,omitempty"`
}

type vectorSearchResult struct {
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

type vectorSearchResponse struct {
	Results []vectorSearchResult `json:"results"`
}

// Search returns up to topK nearest-neighbor records for the query vector,
// ranked highest similarity first by the service.
func (v *VectorIndex) Search(ctx context.Context, indexID string, vector []float32, topK int) ([]domain.SearchResult, error) {
	req := vectorSearchRequest{
		Vector:        vector,
		VectorIndexID: indexID,
		VectorType:    "text",
		TopK:          topK,
	}
	var resp vectorSearchResponse
	if err := v.c.post(ctx, "/vector-index/search", req, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, domain.SearchResult{Text: r.Text, Score: r.Score})
	}
	return results, nil
}
