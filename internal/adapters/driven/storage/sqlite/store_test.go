package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := newTestStore(t)
	assert.NotEmpty(t, store.Path())
}

func TestSaveTurn_AndHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	turns := []domain.ConversationTurn{
		{Role: domain.RoleUser, Content: "how do I reset my password?"},
		{Role: domain.RoleAssistant, Content: "Use the reset link on the login page."},
		{Role: domain.RoleUser, Content: "thanks"},
	}
	for _, turn := range turns {
		require.NoError(t, store.SaveTurn(ctx, "session-1", turn))
	}

	got, err := store.History(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, turns, got)
}

func TestHistory_UnknownSession(t *testing.T) {
	store := newTestStore(t)

	got, err := store.History(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistory_SessionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTurn(ctx, "a", domain.ConversationTurn{Role: domain.RoleUser, Content: "first"}))
	require.NoError(t, store.SaveTurn(ctx, "b", domain.ConversationTurn{Role: domain.RoleUser, Content: "second"}))

	got, err := store.History(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Content)
}

func TestListSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTurn(ctx, "a", domain.ConversationTurn{Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, store.SaveTurn(ctx, "a", domain.ConversationTurn{Role: domain.RoleAssistant, Content: "hello"}))
	require.NoError(t, store.SaveTurn(ctx, "b", domain.ConversationTurn{Role: domain.RoleUser, Content: "hey"}))

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	byID := make(map[string]int)
	for _, s := range sessions {
		byID[s.ID] = s.Turns
		assert.False(t, s.StartedAt.IsZero())
	}
	assert.Equal(t, 2, byID["a"])
	assert.Equal(t, 1, byID["b"])
}

func TestDeleteSession_CascadesTurns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTurn(ctx, "a", domain.ConversationTurn{Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, store.DeleteSession(ctx, "a"))

	got, err := store.History(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got)

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveTurn(ctx, "a", domain.ConversationTurn{Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.History(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Content)
}
