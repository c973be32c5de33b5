// Package plaintext extracts text files verbatim.
package plaintext

import (
	"context"
	"os"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor produces.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeText
}

// Extract reads the file and passes its content through verbatim.
func (e *Extractor) Extract(_ context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ExtractionError{Source: path, Err: err}
	}

	return &domain.Document{
		Content: string(data),
		Source:  path,
		Type:    domain.TypeText,
	}, nil
}
