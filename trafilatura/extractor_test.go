package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/paperdoc"
	"github.com/fwojciec/paperdoc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements paperdoc.BodyExtractor at compile time.
var _ paperdoc.BodyExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content as plain text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/browse">Browse</a></nav>
<article>
<h1>Results</h1>
<p>The proposed method reduces estimation error by a wide margin.</p>
<p>A second paragraph with further experimental detail for readers.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "reduces estimation error")
		assert.Contains(t, text, "further experimental detail")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/journals">Journals</a></li>
</ul>
</nav>
<main>
<h1>Main Content</h1>
<p>This paragraph contains the actual content we want.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "actual content we want")
		assert.NotContains(t, text, "Journals")
	})

	t.Run("result contains no raw markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
<h1>Heading</h1>
<p>Plain text output is expected from this extractor.</p>
</article></body></html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Plain text output is expected")
		assert.NotContains(t, text, "<p>")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractText("")

		require.Error(t, err)
		assert.Equal(t, paperdoc.EINVALID, paperdoc.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content that is long enough to keep.</p></body></html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Simple content")
	})
}
