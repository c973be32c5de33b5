package extractors

import (
	"path/filepath"
	"strings"

	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
	"github.com/fluffyai/helpdesk-cli/internal/extractors/markdown"
	"github.com/fluffyai/helpdesk-cli/internal/extractors/pdf"
	"github.com/fluffyai/helpdesk-cli/internal/extractors/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry with the default file extractors
// registered: markdown (.md, .markdown), PDF (.pdf) and plain text (.txt).
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	r.Register(markdown.New(), ".md", ".markdown")
	r.Register(pdf.New(), ".pdf")
	r.Register(plaintext.New(), ".txt")
	return r
}

// Register binds an extractor to one or more file extensions.
// Extensions are matched case-insensitively and include the leading dot.
func (r *Registry) Register(e driven.Extractor, exts ...string) {
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// ForPath returns the extractor for the given file path, or false when the
// extension is unsupported.
func (r *Registry) ForPath(path string) (driven.Extractor, bool) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// Extensions returns the registered extensions, for diagnostics.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
