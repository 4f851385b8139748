package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunks := ChunkText("a short document", DefaultChunkConfig())

	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0])
}

func TestChunkText_EmptyText(t *testing.T) {
	assert.Nil(t, ChunkText("   \n  ", DefaultChunkConfig()))
}

func TestChunkText_RespectsMaxChars(t *testing.T) {
	text := strings.Repeat("word ", 400)
	cfg := DefaultChunkConfig()

	chunks := ChunkText(text, cfg)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), cfg.MaxChars)
	}
}

func TestChunkText_CutsOnWhitespace(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 60)

	chunks := ChunkText(text, DefaultChunkConfig())

	for _, c := range chunks {
		assert.False(t, strings.HasPrefix(c, " "))
		assert.False(t, strings.HasSuffix(c, " "))
	}
}

func TestChunkText_PreservesAllContentWithoutOverlap(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 60)
	cfg := DefaultChunkConfig()
	require.Zero(t, cfg.Overlap)

	chunks := ChunkText(text, cfg)

	joined := strings.Join(chunks, " ")
	assert.Equal(t, strings.Fields(text), strings.Fields(joined))
}

func TestChunkText_MaxChunksCap(t *testing.T) {
	text := strings.Repeat("word ", 1000)
	cfg := DefaultChunkConfig()
	cfg.MaxChunks = 3

	chunks := ChunkText(text, cfg)

	assert.Len(t, chunks, 3)
}

func TestChunkText_ZeroConfigFallsBackToDefaults(t *testing.T) {
	text := strings.Repeat("word ", 300)

	chunks := ChunkText(text, ChunkConfig{})

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), DefaultChunkConfig().MaxChars)
	}
}
