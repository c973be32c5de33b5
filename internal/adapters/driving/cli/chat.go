package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fluffyai/helpdesk-cli/internal/adapters/driving/tui"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driving"
)

var (
	chatPlain   bool
	chatNoRAG   bool
	chatSession string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Starts an interactive conversation with the helpdesk assistant.

Replies are grounded in the ingested knowledge base unless --no-rag is
given. Type "reset" to clear the conversation and "quit", "exit", "bye"
or "goodbye" to leave.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "line-oriented output, no TUI")
	chatCmd.Flags().BoolVar(&chatNoRAG, "no-rag", false, "answer without knowledge base grounding")
	chatCmd.Flags().StringVar(&chatSession, "session", "", "resume or name a session (default: new)")
	rootCmd.AddCommand(chatCmd)
}

// exitWords terminate the conversation loop.
var exitWords = map[string]bool{
	"quit":    true,
	"exit":    true,
	"bye":     true,
	"goodbye": true,
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatFactory == nil {
		return errors.New("chat service not configured")
	}

	sessionID := chatSession
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	chat := chatFactory(sessionID)

	if chatPlain || !term.IsTerminal(int(os.Stdin.Fd())) {
		return runPlainChat(cmd, chat)
	}
	return tui.Run(chat, !chatNoRAG)
}

// runPlainChat is the line-oriented loop for non-TTY use and --plain.
func runPlainChat(cmd *cobra.Command, chat driving.ChatService) error {
	ctx := context.Background()
	cmd.Println("FluffyAI helpdesk. Type your question, or \"quit\" to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case exitWords[strings.ToLower(line)]:
			cmd.Println("Goodbye!")
			return nil
		case strings.EqualFold(line, "reset"):
			chat.Reset()
			cmd.Println("Conversation cleared.")
			continue
		}

		reply, err := chat.Respond(ctx, line, !chatNoRAG)
		if err != nil {
			cmd.PrintErrf("That didn't work: %v\nRetry your question, or type \"reset\" to start over.\n", err)
			continue
		}
		cmd.Printf("\n%s\n\n", reply)
	}
	return scanner.Err()
}
