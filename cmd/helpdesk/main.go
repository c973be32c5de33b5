// Command helpdesk is the FluffyAI retrieval-augmented helpdesk CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fluffyai/helpdesk-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/fluffyai/helpdesk-cli/internal/adapters/driven/embedding/openai"
	openaillm "github.com/fluffyai/helpdesk-cli/internal/adapters/driven/llm/openai"
	"github.com/fluffyai/helpdesk-cli/internal/adapters/driven/storage/sqlite"
	"github.com/fluffyai/helpdesk-cli/internal/adapters/driven/vectorstore/chromem"
	"github.com/fluffyai/helpdesk-cli/internal/adapters/driving/cli"
	"github.com/fluffyai/helpdesk-cli/internal/chunker"
	"github.com/fluffyai/helpdesk-cli/internal/config"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driving"
	"github.com/fluffyai/helpdesk-cli/internal/core/services"
	"github.com/fluffyai/helpdesk-cli/internal/extractors"
	"github.com/fluffyai/helpdesk-cli/internal/extractors/webpage"
	"github.com/fluffyai/helpdesk-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnv()

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".helpdesk", "data")
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := openaillm.NewLLMService(openaillm.Config{
		APIKey:  config.APIKey(),
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return fmt.Errorf("%w\nSet MOONSHOT_API_KEY or OPENAI_API_KEY in the environment or a .env file", err)
	}
	defer llm.Close()

	vectorIndex, err := chromem.NewStore(chromem.Config{
		Path:           filepath.Join(dataDir, "vectors"),
		Collection:     config.DefaultCollection,
		EmbeddingModel: embedder.ModelName(),
	})
	if err != nil {
		return err
	}
	defer vectorIndex.Close()

	sessionStore, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("Session persistence disabled: %v", err)
		sessionStore = nil
	} else {
		defer sessionStore.Close()
	}

	chunkSize := cfg.Ingest.ChunkSize
	if chunkSize == 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	overlap := cfg.Ingest.Overlap
	if overlap == 0 {
		overlap = chunker.DefaultOverlap
	}
	chk, err := chunker.New(chunkSize, overlap)
	if err != nil {
		return err
	}

	retriever := services.NewRetrieverService(embedder, vectorIndex)
	ingestor := services.NewIngestService(
		extractors.NewRegistry(), webpage.New(), chk, embedder, vectorIndex,
		services.IngestConfig{},
	)

	var store driven.SessionStore
	if sessionStore != nil {
		store = sessionStore
	}

	cli.SetServices(cli.Services{
		Config: cfg,
		ChatFactory: func(sessionID string) driving.ChatService {
			session := services.RestoreSession(context.Background(), store, sessionID)
			return services.NewChatService(llm, retriever, store, session,
				services.ChatConfig{
					Temperature: cfg.Chat.Temperature,
					MaxTokens:   cfg.Chat.MaxTokens,
					TopK:        cfg.Chat.TopK,
				})
		},
		Ingestor:         ingestor,
		Retriever:        retriever,
		VectorIndex:      vectorIndex,
		EmbeddingService: embedder,
		LLMService:       llm,
		SessionStore:     store,
	})

	return cli.Execute()
}

// newEmbedder builds the configured embedding provider.
func newEmbedder(cfg *config.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  config.APIKey(),
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	default:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	}
}
