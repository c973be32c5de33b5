package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [directory]", ingestCmd.Use)
}

func TestIngestCmd_HasWatchAndClearFlags(t *testing.T) {
	require.NotNil(t, ingestCmd.Flags().Lookup("watch"))
	require.NotNil(t, ingestCmd.Flags().Lookup("clear"))
}

func TestIngestCmd_IngestsConfiguredDirByDefault(t *testing.T) {
	fi, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, cfg.Ingest.KnowledgeDir, fi.lastDir)
	assert.Contains(t, buf.String(), "Ingested 2 documents (5 chunks).")
}

func TestIngestCmd_ExplicitDirectoryArg(t *testing.T) {
	fi, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "/tmp/kb"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "/tmp/kb", fi.lastDir)
}

func TestIngestCmd_ClearFlagClearsFirst(t *testing.T) {
	_, fv, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--clear"})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestClear = false
	}()

	require.NoError(t, rootCmd.Execute())
	assert.True(t, fv.cleared)
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	SetServices(Services{})

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest"})
	defer rootCmd.SetArgs(nil)

	assert.Error(t, rootCmd.Execute())
}
