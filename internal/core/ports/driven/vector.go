package driven

import (
	"context"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// VectorIndex is a named persistent collection of embedded chunks with
// nearest-neighbour query support.
//
// The embedding dimensionality is fixed for the lifetime of a collection;
// it is tied to the embedding model in use. Implementations must detect a
// model change and refuse to reuse the collection rather than silently
// mixing embeddings from different models.
type VectorIndex interface {
	// Upsert inserts or overwrites chunks keyed by chunk ID. Re-adding
	// the same ID overwrites, it never duplicates.
	Upsert(ctx context.Context, chunks []domain.DocumentChunk) error

	// Query returns up to k results ordered by ascending distance
	// (nearest first). Fewer than k results are returned when the index
	// holds fewer entries; an empty index yields an empty slice, never
	// an error.
	Query(ctx context.Context, embedding []float32, k int) ([]domain.SearchResult, error)

	// Clear removes all entries. Subsequent Count returns 0 and
	// subsequent Query returns empty.
	Clear(ctx context.Context) error

	// Count returns the current number of stored chunks.
	Count() int

	// Close releases resources.
	Close() error
}
