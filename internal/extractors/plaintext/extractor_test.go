package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

func TestExtract_Verbatim(t *testing.T) {
	content := "Returns accepted within 30 days.\n\n  Indentation preserved.\n"
	path := filepath.Join(t.TempDir(), "policy.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, content, doc.Content)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, domain.TypeText, doc.Type)
}

func TestExtract_MissingFile(t *testing.T) {
	doc, err := New().Extract(context.Background(), "/nonexistent/file.txt")
	require.Error(t, err)
	assert.Nil(t, doc)

	var extErr *domain.ExtractionError
	require.ErrorAs(t, err, &extErr)
}
