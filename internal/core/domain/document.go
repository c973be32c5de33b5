package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// DocumentType identifies how a document's text was extracted.
type DocumentType string

// Known document types.
const (
	TypeMarkdown DocumentType = "markdown"
	TypePDF      DocumentType = "pdf"
	TypeText     DocumentType = "text"
	TypeWebpage  DocumentType = "webpage"
)

// Document is the extracted plain text of one input, before chunking.
type Document struct {
	// Content is the full extracted text.
	Content string

	// Source is the origin identifier (file path or URL).
	Source string

	// Type records which extractor produced the content.
	Type DocumentType
}

// DocumentChunk is the unit stored in and retrieved from the vector index.
// Chunks are created during ingestion and never mutated; they are removed
// only by clearing the whole collection.
type DocumentChunk struct {
	// ID is derived from (Source, Content), so re-ingesting identical
	// content against the same source is idempotent.
	ID string

	// Content is the chunk text. Never empty for a stored chunk.
	Content string

	// Source is the origin identifier of the parent document.
	Source string

	// Type is the extraction origin of the parent document.
	Type DocumentType

	// Embedding is the vector representation of Content.
	Embedding []float32
}

// NewDocumentChunk builds a chunk with its deterministic ID.
// The embedding is attached later, before upsert.
func NewDocumentChunk(content, source string, docType DocumentType) DocumentChunk {
	return DocumentChunk{
		ID:      ChunkID(source, content),
		Content: content,
		Source:  source,
		Type:    docType,
	}
}

// ChunkID returns the stable identifier for a (source, content) pair.
func ChunkID(source, content string) string {
	sum := sha256.Sum256([]byte(source + ":" + content))
	return hex.EncodeToString(sum[:])
}

// SearchResult is a single retrieval hit. Results are transient; they are
// produced by a query and never persisted.
type SearchResult struct {
	// Content is the matched chunk text.
	Content string

	// Source is the origin of the matched chunk.
	Source string

	// Type is the extraction origin of the matched chunk.
	Type DocumentType

	// Distance is the similarity distance (lower = more similar).
	// Nil when the backend does not report a score.
	Distance *float64
}
