package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driving"
	"github.com/fluffyai/helpdesk-cli/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// DefaultTopK is the number of chunks retrieved when the caller passes
// a non-positive topK.
const DefaultTopK = 3

// RetrieverService answers queries by embedding them and searching the
// vector index for the nearest stored chunks.
type RetrieverService struct {
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
}

// NewRetrieverService creates a new retriever service.
func NewRetrieverService(
	embeddingService driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
) *RetrieverService {
	return &RetrieverService{
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
	}
}

// Retrieve embeds the query and returns the topK nearest chunks.
// An empty index or zero hits yields an empty slice, not an error.
func (s *RetrieverService) Retrieve(
	ctx context.Context, query string, topK int,
) ([]domain.SearchResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	if topK <= 0 {
		topK = DefaultTopK
	}
	logger.Debug("Top-k: %d, index count: %d", topK, s.vectorIndex.Count())

	embedding, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.vectorIndex.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("querying vector index: %w", err)
	}

	logger.Info("Retrieved %d chunks", len(results))
	return results, nil
}
