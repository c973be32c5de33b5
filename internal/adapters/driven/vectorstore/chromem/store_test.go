package chromem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(Config{
		Path:           t.TempDir(),
		EmbeddingModel: "test-model",
	})
	require.NoError(t, err)
	return store
}

func chunkWithEmbedding(content, source string, embedding []float32) domain.DocumentChunk {
	chunk := domain.NewDocumentChunk(content, source, domain.TypeText)
	chunk.Embedding = embedding
	return chunk
}

func TestNewStore_RequiresConfig(t *testing.T) {
	_, err := NewStore(Config{EmbeddingModel: "m"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = NewStore(Config{Path: t.TempDir()})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestUpsert_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := []domain.DocumentChunk{
		chunkWithEmbedding("Buddy Bear costs $89.99.", "pricing.md", []float32{1, 0, 0}),
		chunkWithEmbedding("Returns accepted within 30 days.", "policy.md", []float32{0, 1, 0}),
	}

	require.NoError(t, store.Upsert(ctx, chunks))
	require.Equal(t, 2, store.Count())

	// Same (source, content) pairs produce the same IDs; re-upserting
	// overwrites instead of duplicating.
	require.NoError(t, store.Upsert(ctx, chunks))
	assert.Equal(t, 2, store.Count())
}

func TestUpsert_RejectsMalformedChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, []domain.DocumentChunk{
		chunkWithEmbedding("", "empty.md", []float32{1, 0, 0}),
	})
	assert.Error(t, err)

	err = store.Upsert(ctx, []domain.DocumentChunk{
		{ID: "x", Content: "no embedding", Source: "a.md", Type: domain.TypeText},
	})
	assert.Error(t, err)
	assert.Equal(t, 0, store.Count())
}

func TestQuery_EmptyIndex(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Query(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_FewerEntriesThanK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.DocumentChunk{
		chunkWithEmbedding("only entry", "one.md", []float32{1, 0, 0}),
	}))

	results, err := store.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "only entry", results[0].Content)
}

func TestQuery_OrdersByAscendingDistance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.DocumentChunk{
		chunkWithEmbedding("near", "near.md", []float32{1, 0, 0}),
		chunkWithEmbedding("far", "far.md", []float32{0, 1, 0}),
		chunkWithEmbedding("middle", "middle.md", []float32{0.7, 0.7, 0}),
	}))

	results, err := store.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "near", results[0].Content)
	for i := 1; i < len(results); i++ {
		require.NotNil(t, results[i].Distance)
		assert.GreaterOrEqual(t, *results[i].Distance, *results[i-1].Distance)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.DocumentChunk{
		chunkWithEmbedding("to be removed", "doc.md", []float32{1, 0, 0}),
	}))
	require.Equal(t, 1, store.Count())

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, store.Count())

	results, err := store.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewStore_ModelMismatch(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(Config{Path: dir, EmbeddingModel: "all-minilm"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	_, err = NewStore(Config{Path: dir, EmbeddingModel: "nomic-embed-text"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelMismatch))

	// Reopening with the original model is fine.
	_, err = NewStore(Config{Path: dir, EmbeddingModel: "all-minilm"})
	assert.NoError(t, err)
}
