package webpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>FluffyAI</title><style>body { color: red; }</style></head>
<body>
<header>Site header</header>
<nav><a href="/">Home</a></nav>
<script>console.log("tracking");</script>
<main>
  <h1>Shipping   Info</h1>
  <p>Orders ship within
  two business days.</p>
</main>
<footer>Copyright FluffyAI</footer>
</body>
</html>`

func TestExtract_StripsStructuralElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	doc, err := NewWithConfig(Config{FetchRate: 1000}).Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeWebpage, doc.Type)
	assert.Equal(t, srv.URL, doc.Source)
	assert.Contains(t, doc.Content, "Shipping Info")
	assert.Contains(t, doc.Content, "Orders ship within two business days.")
	assert.NotContains(t, doc.Content, "tracking")
	assert.NotContains(t, doc.Content, "Site header")
	assert.NotContains(t, doc.Content, "Home")
	assert.NotContains(t, doc.Content, "Copyright")
	assert.NotContains(t, doc.Content, "  ")
}

func TestExtract_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	doc, err := NewWithConfig(Config{FetchRate: 1000}).Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Nil(t, doc)

	var extErr *domain.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, srv.URL, extErr.Source)
}

func TestExtract_Unreachable(t *testing.T) {
	e := NewWithConfig(Config{
		FetchRate: 1000,
		Client:    &http.Client{Timeout: 200 * time.Millisecond},
	})

	doc, err := e.Extract(context.Background(), "http://127.0.0.1:1/nope")
	require.Error(t, err)
	assert.Nil(t, doc)

	var extErr *domain.ExtractionError
	require.ErrorAs(t, err, &extErr)
}
