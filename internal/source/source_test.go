package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSource_FetchChunks_HTTP(t *testing.T) {
	body := strings.Repeat("employee handbook section ", 50)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	src := NewLocalSource(NewHTTPFetcher(), nil)

	chunks, err := src.FetchChunks(context.Background(), "dl-local", srv.URL, 500)

	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 500)
	}
}

func TestLocalSource_FetchChunks_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewLocalSource(NewHTTPFetcher(), nil)

	_, err := src.FetchChunks(context.Background(), "dl-local", srv.URL, 500)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLocalSource_FetchChunks_UnsupportedScheme(t *testing.T) {
	src := NewLocalSource(NewHTTPFetcher(), nil)

	_, err := src.FetchChunks(context.Background(), "dl-local", "ftp://example.com/doc", 500)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document reference scheme")
}

func TestLocalSource_FetchChunks_S3NotConfigured(t *testing.T) {
	src := NewLocalSource(NewHTTPFetcher(), nil)

	_, err := src.FetchChunks(context.Background(), "dl-local", "s3://bucket/handbook.txt", 500)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3 storage is not configured")
}

func TestLocalSource_CreateNamespace(t *testing.T) {
	src := NewLocalSource(NewHTTPFetcher(), nil)

	a, err := src.CreateNamespace(context.Background())
	require.NoError(t, err)
	b, err := src.CreateNamespace(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestParseS3Reference(t *testing.T) {
	bucket, key, err := parseS3Reference("s3://docs/handbooks/2026.txt")
	require.NoError(t, err)
	assert.Equal(t, "docs", bucket)
	assert.Equal(t, "handbooks/2026.txt", key)

	_, _, err = parseS3Reference("s3://docs")
	assert.Error(t, err)

	_, _, err = parseS3Reference("https://docs/key")
	assert.Error(t, err)
}
