// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Converts a raw document reference into plain text
//   - VectorIndex: Persistent embedding storage with nearest-neighbour query
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Chat completion provider
//
// # Optional Interfaces
//
//   - SessionStore: Transcript persistence. When nil, conversations are
//     kept in memory only and lost on exit.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
