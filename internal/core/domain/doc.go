// Package domain defines the core business entities for the helpdesk chatbot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Extracted text tagged with its origin
//   - DocumentChunk: A retrievable unit of a document, keyed by content hash
//   - SearchResult: A retrieval hit with its distance score
//   - ConversationTurn / Session: One resettable conversation history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
