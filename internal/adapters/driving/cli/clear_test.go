package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

func TestClearCmd_ClearsIndex(t *testing.T) {
	_, fv, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"clear"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.True(t, fv.cleared)
	assert.Contains(t, buf.String(), "Vector index cleared.")
}

func TestClearCmd_SessionsFlagDeletesTranscripts(t *testing.T) {
	_, _, fs, cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, fs.SaveTurn(context.Background(), "s1",
		domain.ConversationTurn{Role: domain.RoleUser, Content: "hi"}))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"clear", "--sessions"})
	defer func() {
		rootCmd.SetArgs(nil)
		clearSessions = false
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Empty(t, fs.sessions)
	assert.Contains(t, buf.String(), "Deleted 1 stored sessions.")
}
