// Package webpage fetches web pages and extracts their visible text.
package webpage

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Default configuration values.
const (
	// DefaultTimeout bounds one page fetch so a slow host cannot stall
	// batch ingestion of the remaining documents.
	DefaultTimeout = 10 * time.Second

	// DefaultFetchRate throttles outbound fetches (requests per second).
	DefaultFetchRate = 2
)

// Config holds configuration for the webpage extractor.
type Config struct {
	// Timeout is the per-fetch timeout (default: 10s).
	Timeout time.Duration

	// FetchRate is the outbound request rate in requests per second
	// (default: 2).
	FetchRate float64

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// Extractor fetches a URL and extracts its visible text. Structural
// elements (scripts, styles, navigation, headers, footers) are removed and
// whitespace runs are collapsed to single spaces.
type Extractor struct {
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a webpage extractor with default configuration.
func New() *Extractor {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a webpage extractor.
func NewWithConfig(cfg Config) *Extractor {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FetchRate == 0 {
		cfg.FetchRate = DefaultFetchRate
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Extractor{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.FetchRate), 1),
	}
}

// Type returns the document type this extractor produces.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeWebpage
}

// Extract fetches the URL and returns its visible text. Network and HTTP
// status failures yield an ExtractionError; the ingestor logs and skips.
func (e *Extractor) Extract(ctx context.Context, url string) (*domain.Document, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, &domain.ExtractionError{Source: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &domain.ExtractionError{Source: url, Err: err}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &domain.ExtractionError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ExtractionError{
			Source: url,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ExtractionError{Source: url, Err: err}
	}

	return &domain.Document{
		Content: stripHTML(string(body)),
		Source:  url,
		Type:    domain.TypeWebpage,
	}, nil
}

// Pre-compiled regular expressions for HTML stripping.
var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag  = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	navTag       = regexp.MustCompile(`(?is)<nav[^>]*>.*?</nav>`)
	headerTag    = regexp.MustCompile(`(?is)<header[^>]*>.*?</header>`)
	footerTag    = regexp.MustCompile(`(?is)<footer[^>]*>.*?</footer>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// stripHTML removes non-content structural elements and all tags, then
// collapses whitespace runs to single spaces.
func stripHTML(content string) string {
	content = htmlComments.ReplaceAllString(content, "")
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = navTag.ReplaceAllString(content, "")
	content = headerTag.ReplaceAllString(content, "")
	content = footerTag.ReplaceAllString(content, "")

	content = allTags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = whitespace.ReplaceAllString(content, " ")

	return strings.TrimSpace(content)
}
