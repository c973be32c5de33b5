package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidConfig indicates missing credentials, an empty knowledge
	// base, or invalid chunking parameters. Fatal at startup.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrVectorIndexUnavailable indicates the vector index backend cannot
	// be reached. Fatal, since retrieval depends on it.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrCompletionFailed indicates the completion provider call failed
	// (network, auth, rate limit, malformed response). Surfaced to the
	// caller of the chat turn, never retried silently.
	ErrCompletionFailed = errors.New("completion provider failed")

	// ErrModelMismatch indicates a vector collection was created with a
	// different embedding model than the one configured. Mixing models in
	// one index corrupts search quality, so the collection must be
	// recreated instead.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrEmptyKnowledgeBase indicates ingestion found no usable documents.
	ErrEmptyKnowledgeBase = errors.New("no documents found in knowledge base")
)

// ExtractionError reports a per-document extraction failure. Extraction
// errors are isolated: they are collected and reported, never fatal to a
// batch run.
type ExtractionError struct {
	// Source is the file path or URL that failed.
	Source string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
