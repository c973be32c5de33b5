// Package chunker splits extracted text into overlapping, boundary-aware
// segments sized for embedding quality.
package chunker

import (
	"fmt"
	"strings"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 800

// DefaultOverlap is the default number of overlapping characters between
// consecutive chunks.
const DefaultOverlap = 150

// breakFraction is how far into a window a sentence break must fall to be
// used instead of the hard boundary.
const breakFraction = 0.5

// Chunker splits text into overlapping chunks. It is stateless: Split is a
// pure function of the input text and the configured parameters.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker. The overlap must be smaller than the chunk size,
// otherwise the window cannot advance.
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must satisfy 0 <= overlap < chunk size, got overlap=%d chunk size=%d",
			domain.ErrInvalidConfig, overlap, chunkSize)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split walks the text in windows of chunkSize characters. A window that
// does not reach the end of the text is truncated at the nearest sentence
// terminator or newline past the window midpoint, so chunks avoid cutting
// mid-sentence. The next window starts overlap characters before the end of
// the current one. Chunks are trimmed of surrounding whitespace; empty
// chunks are dropped. Empty input yields an empty result.
func (c *Chunker) Split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}
		window := text[start:end]

		if end < len(text) {
			lastPeriod := strings.LastIndexByte(window, '.')
			lastNewline := strings.LastIndexByte(window, '\n')
			breakPoint := lastPeriod
			if lastNewline > breakPoint {
				breakPoint = lastNewline
			}
			if float64(breakPoint) > float64(c.chunkSize)*breakFraction {
				window = window[:breakPoint+1]
				end = start + breakPoint + 1
			}
		}

		if chunk := strings.TrimSpace(window); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}

		next := end - c.overlap
		if next <= start {
			return nil, fmt.Errorf("%w: chunking cannot advance at offset %d (chunk size=%d overlap=%d)",
				domain.ErrInvalidConfig, start, c.chunkSize, c.overlap)
		}
		start = next
	}

	return chunks, nil
}

// ChunkSize returns the configured window size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}
