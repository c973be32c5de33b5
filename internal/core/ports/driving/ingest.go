package driving

import (
	"context"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// Ingestor loads a knowledge base into the vector index.
type Ingestor interface {
	// IngestDirectory recursively ingests supported files under root,
	// plus any URLs listed in root/urls.txt. Per-document failures are
	// collected in the report, not raised.
	IngestDirectory(ctx context.Context, root string) (*domain.IngestReport, error)

	// IngestFile ingests a single file.
	IngestFile(ctx context.Context, path string) (*domain.IngestReport, error)
}
