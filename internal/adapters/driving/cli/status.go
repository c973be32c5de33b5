package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service and index status",
	Long: `Checks that the embedding and completion providers are reachable
and reports the current state of the vector index and stored sessions.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if embeddingService == nil || llmService == nil || vectorIndex == nil {
		return errors.New("services not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd.Printf("Embedding model:  %s", embeddingService.ModelName())
	if err := embeddingService.Ping(ctx); err != nil {
		cmd.Printf("  (unreachable: %v)\n", err)
	} else {
		cmd.Println("  (ok)")
	}

	cmd.Printf("Completion model: %s", llmService.ModelName())
	if err := llmService.Ping(ctx); err != nil {
		cmd.Printf("  (unreachable: %v)\n", err)
	} else {
		cmd.Println("  (ok)")
	}

	cmd.Printf("Indexed chunks:   %d\n", vectorIndex.Count())
	cmd.Printf("Knowledge dir:    %s\n", cfg.Ingest.KnowledgeDir)

	if sessionStore != nil {
		sessions, err := sessionStore.ListSessions(ctx)
		if err != nil {
			cmd.PrintErrf("Could not list sessions: %v\n", err)
			return nil
		}
		cmd.Printf("Stored sessions:  %d\n", len(sessions))
		for _, s := range sessions {
			cmd.Printf("  %s  %d turns  started %s\n",
				s.ID, s.Turns, s.StartedAt.Format(time.RFC3339))
		}
	}
	return nil
}
