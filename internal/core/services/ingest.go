package services

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driving"
	"github.com/fluffyai/helpdesk-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// urlListFile names the optional per-directory URL list.
const urlListFile = "urls.txt"

// Chunker splits extracted text into overlapping chunks.
type Chunker interface {
	Split(text string) ([]string, error)
}

// IngestConfig configures batch ingestion.
type IngestConfig struct {
	// EmbedBatchSize is how many chunks are embedded per request.
	// Defaults to 32.
	EmbedBatchSize int

	// Workers bounds concurrent embedding batches. Defaults to 4.
	Workers int
}

// IngestService loads a knowledge base directory into the vector index:
// extract, chunk, embed, upsert. Per-document failures are collected in
// the report; only infrastructure failures abort the run.
type IngestService struct {
	registry         driven.ExtractorRegistry
	urlExtractor     driven.Extractor // optional, may be nil
	chunker          Chunker
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
	config           IngestConfig
}

// NewIngestService creates a new ingest service. The urlExtractor handles
// entries from urls.txt and may be nil to skip URL ingestion.
func NewIngestService(
	registry driven.ExtractorRegistry,
	urlExtractor driven.Extractor,
	chunker Chunker,
	embeddingService driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
	config IngestConfig,
) *IngestService {
	if config.EmbedBatchSize <= 0 {
		config.EmbedBatchSize = 32
	}
	if config.Workers <= 0 {
		config.Workers = 4
	}
	return &IngestService{
		registry:         registry,
		urlExtractor:     urlExtractor,
		chunker:          chunker,
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
		config:           config,
	}
}

// IngestDirectory recursively ingests supported files under root, plus
// any URLs listed in root/urls.txt.
func (s *IngestService) IngestDirectory(ctx context.Context, root string) (*domain.IngestReport, error) {
	logger.Section("Ingestion")
	logger.Info("Scanning %s", root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: knowledge base directory %s: %v", domain.ErrInvalidConfig, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidConfig, root)
	}

	report := &domain.IngestReport{}

	var docs []*domain.Document
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// The URL list is ingestion metadata, not a document.
		if d.Name() == urlListFile {
			return nil
		}
		extractor, ok := s.registry.ForPath(path)
		if !ok {
			return nil
		}
		doc, err := s.extract(ctx, extractor, path)
		if err != nil {
			report.AddFailure(asExtractionError(path, err))
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %s: %w", root, walkErr)
	}

	urlDocs, urlFailures, err := s.ingestURLs(ctx, filepath.Join(root, urlListFile))
	if err != nil {
		return nil, err
	}
	docs = append(docs, urlDocs...)
	for _, f := range urlFailures {
		report.AddFailure(f)
	}

	if len(docs) == 0 && len(report.Failed) == 0 {
		return nil, fmt.Errorf("%w: no supported documents under %s", domain.ErrEmptyKnowledgeBase, root)
	}

	if err := s.index(ctx, docs, report); err != nil {
		return nil, err
	}

	logger.Info("Ingested %d documents (%d chunks, %d failed)",
		report.Documents, report.Chunks, len(report.Failed))
	return report, nil
}

// IngestFile ingests a single file.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*domain.IngestReport, error) {
	logger.Section("Ingestion")

	extractor, ok := s.registry.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %s", domain.ErrInvalidConfig, filepath.Ext(path))
	}

	report := &domain.IngestReport{}
	doc, err := s.extract(ctx, extractor, path)
	if err != nil {
		report.AddFailure(asExtractionError(path, err))
		return report, nil
	}

	if err := s.index(ctx, []*domain.Document{doc}, report); err != nil {
		return nil, err
	}
	return report, nil
}

// extract runs one extractor and drops documents with no text.
func (s *IngestService) extract(
	ctx context.Context, extractor driven.Extractor, ref string,
) (*domain.Document, error) {
	doc, err := extractor.Extract(ctx, ref)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Content) == "" {
		return nil, &domain.ExtractionError{Source: ref, Err: fmt.Errorf("no extractable text")}
	}
	return doc, nil
}

// ingestURLs reads a urls.txt file and fetches each listed page.
// A missing file is not an error; the list is optional.
func (s *IngestService) ingestURLs(
	ctx context.Context, listPath string,
) ([]*domain.Document, []*domain.ExtractionError, error) {
	f, err := os.Open(listPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("opening %s: %w", listPath, err)
	}
	defer f.Close()

	if s.urlExtractor == nil {
		logger.Warn("Found %s but URL ingestion is disabled", listPath)
		return nil, nil, nil
	}

	var (
		docs     []*domain.Document
		failures []*domain.ExtractionError
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		logger.Debug("Fetching %s", line)
		doc, err := s.extract(ctx, s.urlExtractor, line)
		if err != nil {
			failures = append(failures, asExtractionError(line, err))
			logger.Warn("Skipping %s: %v", line, err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", listPath, err)
	}
	return docs, failures, nil
}

// index chunks, embeds and upserts the extracted documents.
// Embedding batches run in parallel; the vector index serialises writes
// through its own locking.
func (s *IngestService) index(
	ctx context.Context, docs []*domain.Document, report *domain.IngestReport,
) error {
	var chunks []domain.DocumentChunk
	for _, doc := range docs {
		pieces, err := s.chunker.Split(doc.Content)
		if err != nil {
			return fmt.Errorf("chunking %s: %w", doc.Source, err)
		}
		for _, piece := range pieces {
			chunks = append(chunks, domain.NewDocumentChunk(piece, doc.Source, doc.Type))
		}
		report.Documents++
	}

	if len(chunks) == 0 {
		return nil
	}
	logger.Info("Embedding %d chunks from %d documents", len(chunks), len(docs))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for start := 0; start < len(chunks); start += s.config.EmbedBatchSize {
		end := start + s.config.EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Content
			}
			embeddings, err := s.embeddingService.EmbedBatch(gctx, texts)
			if err != nil {
				return fmt.Errorf("embedding batch: %w", err)
			}
			for i := range batch {
				batch[i].Embedding = embeddings[i]
			}
			mu.Lock()
			defer mu.Unlock()
			if err := s.vectorIndex.Upsert(gctx, batch); err != nil {
				return fmt.Errorf("upserting batch: %w", err)
			}
			report.Chunks += len(batch)
			return nil
		})
	}

	return g.Wait()
}

// asExtractionError wraps err as an ExtractionError unless it already
// is one.
func asExtractionError(source string, err error) *domain.ExtractionError {
	if ee, ok := err.(*domain.ExtractionError); ok {
		return ee
	}
	return &domain.ExtractionError{Source: source, Err: err}
}
