package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var clearSessions bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all indexed chunks",
	Long: `Removes every chunk from the vector index. The knowledge base files
on disk are untouched; re-run ingest to rebuild the index.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearSessions, "sessions", false, "also delete stored session transcripts")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if vectorIndex == nil {
		return errors.New("vector index not configured")
	}

	ctx := context.Background()
	if err := vectorIndex.Clear(ctx); err != nil {
		return err
	}
	cmd.Println("Vector index cleared.")

	if clearSessions && sessionStore != nil {
		sessions, err := sessionStore.ListSessions(ctx)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			if err := sessionStore.DeleteSession(ctx, s.ID); err != nil {
				return err
			}
		}
		cmd.Printf("Deleted %d stored sessions.\n", len(sessions))
	}
	return nil
}
