package driving

import (
	"context"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// Retriever answers "given a query string, return the most relevant chunks".
type Retriever interface {
	// Retrieve embeds the query and returns the topK nearest chunks.
	// An empty index yields an empty slice; "no context found" is a
	// valid, expected state, not an error.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)
}
