// Package extractors provides per-format text extraction from knowledge
// base documents. Each format lives in its own sub-package implementing the
// driven.Extractor port; this package holds the registry that selects an
// extractor by file extension.
//
// Extraction failures are per-document: an extractor returns a
// *domain.ExtractionError and the ingestor records it without aborting the
// rest of the batch.
package extractors
