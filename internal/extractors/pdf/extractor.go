// Package pdf extracts text from PDF documents page by page.
package pdf

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor produces.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypePDF
}

// Extract concatenates per-page text with separating newlines. A page that
// fails to yield text contributes nothing; only a document that cannot be
// opened at all fails the extraction.
func (e *Extractor) Extract(_ context.Context, path string) (*domain.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &domain.ExtractionError{Source: path, Err: err}
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable page contributes nothing.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return &domain.Document{
		Content: strings.TrimSpace(sb.String()),
		Source:  path,
		Type:    domain.TypePDF,
	}, nil
}
