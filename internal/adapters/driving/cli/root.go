// Package cli implements the helpdesk command-line interface using cobra.
// Commands receive their services through SetServices; main wires the
// adapters and injects them before Execute.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/fluffyai/helpdesk-cli/internal/config"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driving"
	"github.com/fluffyai/helpdesk-cli/internal/logger"
)

// Injected services. Commands check for nil and fail with a clear
// message instead of panicking.
var (
	cfg              *config.Config
	chatFactory      ChatFactory
	ingestor         driving.Ingestor
	retriever        driving.Retriever
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	sessionStore     driven.SessionStore
)

// ChatFactory creates a chat orchestrator for a fresh session.
// The CLI owns session lifetime; the factory hides service wiring.
type ChatFactory func(sessionID string) driving.ChatService

// Services bundles everything the commands need.
type Services struct {
	Config           *config.Config
	ChatFactory      ChatFactory
	Ingestor         driving.Ingestor
	Retriever        driving.Retriever
	VectorIndex      driven.VectorIndex
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	SessionStore     driven.SessionStore
}

// SetServices injects the wired services before Execute runs.
func SetServices(s Services) {
	cfg = s.Config
	chatFactory = s.ChatFactory
	ingestor = s.Ingestor
	retriever = s.Retriever
	vectorIndex = s.VectorIndex
	embeddingService = s.EmbeddingService
	llmService = s.LLMService
	sessionStore = s.SessionStore
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "FluffyAI helpdesk assistant",
	Long: `A retrieval-augmented helpdesk assistant for FluffyAI.

Ingest a knowledge base of markdown, PDF, text and web documents, then
chat with an assistant that grounds its answers in that knowledge base.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
