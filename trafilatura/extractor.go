package trafilatura

import (
	"strings"

	"github.com/fwojciec/paperdoc"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements paperdoc.BodyExtractor at compile time.
var _ paperdoc.BodyExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull main content text out of HTML. The
// publisher engines use it as a last resort when none of their selector
// strategies matched the rendered page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the main content as plain text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", paperdoc.Errorf(paperdoc.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", paperdoc.Errorf(paperdoc.EINTERNAL, "content extraction failed: %v", err)
	}

	return paperdoc.CleanText(result.ContentText), nil
}
