package readability

import (
	"strings"

	"github.com/fwojciec/paperdoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements paperdoc.BodyExtractor at compile time.
var _ paperdoc.BodyExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", paperdoc.Errorf(paperdoc.EINTERNAL, "content extraction failed: %v", err)
	}

	return paperdoc.CleanText(article.TextContent), nil
}
