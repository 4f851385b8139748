package lake

import (
	"context"
	"strconv"
)

// DocumentStore is the client for the remote document-store service. It
// creates namespaces, registers documents by reference, and fetches them
// back in chunked form.
type DocumentStore struct {
	c *Client
}

// NewDocumentStore creates a document-store client on the shared transport.
func NewDocumentStore(c *Client) *DocumentStore {
	return &DocumentStore{c: c}
}

type documentStoreCreateResponse struct {
	DocumentStoreID string `json:"document_store_id"`
}

// Create provisions a new document-store namespace and returns its
// identifier. An empty identifier in the response is reported as-is; the
// resource registry treats it as a malformed creation response.
func (s *DocumentStore) Create(ctx context.Context) (string, error) {
	var resp documentStoreCreateResponse
	if err := s.c.post(ctx, "/document-store/create", struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.DocumentStoreID, nil
}

type documentPushRequest struct {
	DocumentStoreID string `json:"document_store_id"`
	DocumentType    string `json:"document_type"`
	DocumentData    string `json:"document_data"`
}

type documentPushResponse struct {
	DocumentID string `json:"document_id"`
}

// PushDocument registers a document reference (a URL) under the given store
// namespace and returns the store's document identifier.
func (s *DocumentStore) PushDocument(ctx context.Context, storeID, reference string) (string, error) {
	req := documentPushRequest{
		DocumentStoreID: storeID,
		DocumentType:    "url",
		DocumentData:    reference,
	}
	var resp documentPushResponse
	if err := s.c.post(ctx, "/document-store/push", req, &resp); err != nil {
		return "", err
	}
	return resp.DocumentID, nil
}

type documentFetchRequest struct {
	DocumentID      string `json:"document_id"`
	DocumentStoreID string `json:"document_store_id"`
	FetchFormat     string `json:"fetch_format"`
	ChunkSize       string `json:"chunk_size"`
}

type documentFetchResponse struct {
	Chunks []string `json:"chunks"`
}

// FetchChunks retrieves a previously pushed document divided into chunks of
// at most chunkSize units. The unit (characters or tokens) is the service's
// contract; it is not recomputed here.
func (s *DocumentStore) FetchChunks(ctx context.Context, storeID, documentID string, chunkSize int) ([]string, error) {
	req := documentFetchRequest{
		DocumentID:      documentID,
		DocumentStoreID: storeID,
		FetchFormat:     "chunk",
		ChunkSize:       strconv.Itoa(chunkSize),
	}
	var resp documentFetchResponse
	if err := s.c.post(ctx, "/document-store/fetch", req, &resp); err != nil {
		return nil, err
	}
	return resp.Chunks, nil
}
