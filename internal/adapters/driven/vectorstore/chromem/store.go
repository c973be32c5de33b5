// Package chromem provides a VectorIndex adapter backed by chromem-go,
// an embeddable vector database with on-disk persistence.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorIndex = (*Store)(nil)

// DefaultCollection is the default collection name.
const DefaultCollection = "helpdesk_docs"

// modelMarkerFile records which embedding model a data directory was built
// with. chromem does not expose collection metadata after load, so the
// marker is the mismatch guard: reusing a collection with a different model
// silently corrupts search quality and must fail instead.
const modelMarkerFile = "embedding_model"

// Config holds configuration for the chromem vector store.
type Config struct {
	// Path is the persistence directory (required).
	Path string

	// Collection is the collection name (default: helpdesk_docs).
	Collection string

	// EmbeddingModel is the name of the model producing the stored
	// vectors (required). A collection created with a different model is
	// rejected with domain.ErrModelMismatch.
	EmbeddingModel string
}

// Store is a persistent vector collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	path       string
}

// NewStore opens (or creates) a persistent collection at cfg.Path.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: vector store path is required", domain.ErrInvalidConfig)
	}
	if cfg.EmbeddingModel == "" {
		return nil, fmt.Errorf("%w: embedding model name is required", domain.ErrInvalidConfig)
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	if err := checkModelMarker(cfg.Path, cfg.EmbeddingModel); err != nil {
		return nil, err
	}

	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrVectorIndexUnavailable, cfg.Path, err)
	}

	collection, err := db.GetOrCreateCollection(cfg.Collection, collectionMetadata(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: collection %s: %w", domain.ErrVectorIndexUnavailable, cfg.Collection, err)
	}

	if err := writeModelMarker(cfg.Path, cfg.EmbeddingModel); err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		collection: collection,
		name:       cfg.Collection,
		path:       cfg.Path,
	}, nil
}

// Upsert inserts or overwrites chunks keyed by their deterministic IDs.
// Malformed chunks (empty content or missing embedding) are rejected before
// anything is written, so a bad batch does not land partially.
func (s *Store) Upsert(ctx context.Context, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]string, len(chunks))
	embeddings := make([][]float32, len(chunks))
	metadatas := make([]map[string]string, len(chunks))
	contents := make([]string, len(chunks))

	for i, chunk := range chunks {
		if chunk.Content == "" {
			return fmt.Errorf("chunk %s from %s has empty content", chunk.ID, chunk.Source)
		}
		if len(chunk.Embedding) == 0 {
			return fmt.Errorf("chunk %s from %s has no embedding", chunk.ID, chunk.Source)
		}
		ids[i] = chunk.ID
		embeddings[i] = chunk.Embedding
		metadatas[i] = map[string]string{
			"source": chunk.Source,
			"type":   string(chunk.Type),
		}
		contents[i] = chunk.Content
	}

	if err := s.collection.Add(ctx, ids, embeddings, metadatas, contents); err != nil {
		return fmt.Errorf("%w: upsert %d chunks: %w", domain.ErrVectorIndexUnavailable, len(chunks), err)
	}
	return nil
}

// Query returns up to k nearest chunks by ascending distance. An empty
// collection yields an empty result, never an error.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]domain.SearchResult, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return []domain.SearchResult{}, nil
	}
	if k > count {
		k = count
	}

	hits, err := s.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", domain.ErrVectorIndexUnavailable, err)
	}

	// chromem reports cosine similarity (higher = closer) and returns
	// hits best-first; convert to a distance so lower = more similar.
	results := make([]domain.SearchResult, len(hits))
	for i, hit := range hits {
		distance := 1 - float64(hit.Similarity)
		results[i] = domain.SearchResult{
			Content:  hit.Content,
			Source:   hit.Metadata["source"],
			Type:     domain.DocumentType(hit.Metadata["type"]),
			Distance: &distance,
		}
	}
	return results, nil
}

// Clear removes all entries by dropping and recreating the collection.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("%w: clear: %w", domain.ErrVectorIndexUnavailable, err)
	}
	collection, err := s.db.GetOrCreateCollection(s.name, collectionMetadata(), nil)
	if err != nil {
		return fmt.Errorf("%w: recreate collection: %w", domain.ErrVectorIndexUnavailable, err)
	}
	s.collection = collection
	return nil
}

// Count returns the number of stored chunks.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Close releases resources.
func (s *Store) Close() error {
	// chromem persists on write; nothing to flush.
	return nil
}

func collectionMetadata() map[string]string {
	return map[string]string{"hnsw:space": "cosine"}
}

// checkModelMarker fails when the data directory was built with a
// different embedding model than the one configured.
func checkModelMarker(path, model string) error {
	data, err := os.ReadFile(filepath.Join(path, modelMarkerFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read model marker: %w", domain.ErrVectorIndexUnavailable, err)
	}
	stored := strings.TrimSpace(string(data))
	if stored != "" && stored != model {
		return fmt.Errorf("%w: collection at %s was built with %q but %q is configured; clear and re-ingest",
			domain.ErrModelMismatch, path, stored, model)
	}
	return nil
}

func writeModelMarker(path, model string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fmt.Errorf("%w: create data directory: %w", domain.ErrVectorIndexUnavailable, err)
	}
	marker := filepath.Join(path, modelMarkerFile)
	if err := os.WriteFile(marker, []byte(model+"\n"), 0o600); err != nil {
		return fmt.Errorf("%w: write model marker: %w", domain.ErrVectorIndexUnavailable, err)
	}
	return nil
}
