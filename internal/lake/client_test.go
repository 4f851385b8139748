package lake

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lakeworks/ragline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		AccountID: "acct-1",
	})
	return srv, client
}

func TestClient_Post_SetsAuthHeaders(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "acct-1", r.Header.Get("X-Account-Id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{}`))
	})

	err := client.post(context.Background(), "/anything", struct{}{}, nil)
	require.NoError(t, err)
}

func TestClient_Post_DecodesErrorBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream exploded"}`))
	})

	err := client.post(context.Background(), "/anything", struct{}{}, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestDocumentStore_Create(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document-store/create", r.URL.Path)
		w.Write([]byte(`{"document_store_id":"dl-42"}`))
	})

	id, err := NewDocumentStore(client).Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dl-42", id)
}

func TestDocumentStore_PushAndFetch(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/document-store/push":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "dl-42", req["document_store_id"])
			assert.Equal(t, "url", req["document_type"])
			assert.Equal(t, "https://example.com/handbook", req["document_data"])
			w.Write([]byte(`{"document_id":"doc-7"}`))
		case "/document-store/fetch":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "doc-7", req["document_id"])
			assert.Equal(t, "chunk", req["fetch_format"])
			assert.Equal(t, "500", req["chunk_size"])
			w.Write([]byte(`{"chunks":["part one","part two"]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	store := NewDocumentStore(client)
	ctx := context.Background()

	docID, err := store.PushDocument(ctx, "dl-42", "https://example.com/handbook")
	require.NoError(t, err)
	assert.Equal(t, "doc-7", docID)

	chunks, err := store.FetchChunks(ctx, "dl-42", docID, 500)
	require.NoError(t, err)
	assert.Equal(t, []string{"part one", "part two"}, chunks)
}

func TestVectorIndex_EmbedPushSearch(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vector-index/create":
			w.Write([]byte(`{"vector_index_id":"vl-9"}`))
		case "/vector-index/embed":
			w.Write([]byte(`{"vector":[0.1,0.2,0.3]}`))
		case "/vector-index/push":
			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "vl-9", req["vector_index_id"])
			assert.Equal(t, "text", req["vector_type"])
			assert.Equal(t, "chunk text", req["document_text"])
			assert.NotNil(t, req["metadata"])
			w.Write([]byte(`{"status":"ok"}`))
		case "/vector-index/search":
			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, float64(4), req["top_k"])
			w.Write([]byte(`{"results":[{"text":"best","score":0.97},{"text":"next","score":0.85}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	index := NewVectorIndex(client)
	ctx := context.Background()

	id, err := index.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vl-9", id)

	vector, err := index.GenerateEmbedding(ctx, "chunk text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)

	err = index.Push(ctx, id, domain.IndexedRecord{Vector: vector, Text: "chunk text"})
	require.NoError(t, err)

	results, err := index.Search(ctx, id, vector, 4)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "best", results[0].Text)
	assert.InDelta(t, 0.97, results[0].Score, 0.001)
}

func TestCompletion_Complete(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/completion/chat", r.URL.Path)
		var req struct {
			Messages []domain.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, domain.RoleSystem, req.Messages[0].Role)
		assert.Equal(t, domain.RoleUser, req.Messages[1].Role)
		w.Write([]byte(`{"answer":"forty-two"}`))
	})

	answer, err := NewCompletion(client).Complete(context.Background(), []domain.Message{
		{Role: domain.RoleSystem, Content: "You are helpful."},
		{Role: domain.RoleUser, Content: "What is the answer?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "forty-two", answer)
}
