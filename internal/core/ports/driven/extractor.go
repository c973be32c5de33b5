package driven

import (
	"context"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// Extractor converts one document reference (file path or URL) into
// normalised plain text. A failing extraction returns a
// *domain.ExtractionError and must not affect sibling documents.
type Extractor interface {
	// Extract reads the referenced document and returns its text.
	Extract(ctx context.Context, ref string) (*domain.Document, error)

	// Type returns the document type this extractor produces.
	Type() domain.DocumentType
}

// ExtractorRegistry selects an extractor for a file path by extension.
type ExtractorRegistry interface {
	// ForPath returns the extractor for the given file path, or false
	// when the extension is unsupported.
	ForPath(path string) (Extractor, bool)
}
