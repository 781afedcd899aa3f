package goquery_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/paperdoc"
	"github.com/fwojciec/paperdoc/goquery"
	"github.com/fwojciec/paperdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure ACMScraper implements paperdoc.Scraper at compile time.
var _ paperdoc.Scraper = (*goquery.ACMScraper)(nil)

const acmArticleHTML = `<!DOCTYPE html>
<html>
<head><title>ACM DL</title></head>
<body>
<h1 property="name">Fast Inference at the Edge</h1>
<div>
	<span property="author" typeof="Person">
		<span property="givenName">Ada</span>
		<span property="familyName">Lovelace</span>
	</span>
	<span property="author" typeof="Person">
		<span property="givenName">Alan</span>
		<span property="familyName">Turing</span>
	</span>
	<span property="author" typeof="Person">
		<span property="givenName">Ada</span>
		<span property="familyName">Lovelace</span>
	</span>
</div>
<section id="summary-abstract">
	<div role="paragraph">Edge devices are resource constrained.</div>
	<div role="paragraph">We propose a faster scheduler.</div>
</section>
<section id="sec-terms">
	<a href="#">edge computing</a>
	<a href="#">scheduling</a>
</section>
<section id="bodymatter">
	<section id="sec-1">
		<h2>Introduction</h2>
		<div role="paragraph">Deep models keep   growing.</div>
		<div role="list">
			<div role="listitem"><div class="content"><div role="paragraph">low latency</div></div></div>
			<div role="listitem"><div class="content"><div role="paragraph">low power</div></div></div>
		</div>
	</section>
	<section id="sec-2">
		<h3>System Design</h3>
		<div role="paragraph">The scheduler runs on-device.</div>
		<div class="figure-wrap">
			<figure id="fig1" class="graphic">
				<img data-viewer-src="/cms/asset/fig1-large.png" src="/cms/asset/fig1.png"/>
			</figure>
			<div class="core-label">Figure 1:</div>
			<figcaption><div role="paragraph">System overview.</div></figcaption>
		</div>
	</section>
</section>
</body>
</html>`

func acmSession(t *testing.T, html string) (*mock.Session, *[]string) {
	t.Helper()
	navigated := &[]string{}
	return &mock.Session{
		NavigateFn: func(_ context.Context, url string) error {
			*navigated = append(*navigated, url)
			return nil
		},
		AwaitLoginFn: func(_ context.Context) (string, error) {
			return "", nil
		},
		WaitVisibleFn: func(_ context.Context, _ string, _ time.Duration) error {
			return nil
		},
		HTMLFn: func(_ context.Context) (string, error) {
			return html, nil
		},
		DownloadImageFn: func(_ context.Context, _, _, _ string) string {
			return "images/fig_0000000000000001.png"
		},
	}, navigated
}

func TestACMScraper_Publisher(t *testing.T) {
	t.Parallel()

	s := goquery.NewACMScraper(nil)
	assert.Equal(t, "acm", s.Publisher())
}

func TestACMScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("extracts metadata and sections from bodymatter", func(t *testing.T) {
		t.Parallel()

		session, navigated := acmSession(t, acmArticleHTML)
		s := goquery.NewACMScraper(nil)

		paper, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{
			DOI:       "10.1145/1234567.8901234",
			URL:       "https://dl.acm.org/doi/10.1145/1234567.8901234",
			OutputDir: t.TempDir(),
		})

		require.NoError(t, err)
		require.Equal(t, []string{"https://dl.acm.org/doi/10.1145/1234567.8901234"}, *navigated)

		assert.Equal(t, "10.1145/1234567.8901234", paper.DOI)
		assert.Equal(t, "acm", paper.Publisher)
		assert.Equal(t, "Fast Inference at the Edge", paper.Title)
		assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, paper.Authors)
		assert.Equal(t, "Edge devices are resource constrained. We propose a faster scheduler.", paper.Abstract)
		assert.Equal(t, []string{"edge computing", "scheduling"}, paper.Keywords)

		require.Len(t, paper.Sections, 2)

		intro := paper.Sections[0]
		assert.Equal(t, "Introduction", intro.Heading)
		assert.Equal(t, 2, intro.Level)
		require.Len(t, intro.Content, 2)
		assert.Equal(t, paperdoc.TextBlock("Deep models keep growing."), intro.Content[0])
		assert.Equal(t, paperdoc.TextBlock("- low latency\n- low power"), intro.Content[1])

		design := paper.Sections[1]
		assert.Equal(t, "System Design", design.Heading)
		assert.Equal(t, 3, design.Level)
		require.Len(t, design.Content, 2)
		assert.Equal(t, paperdoc.TextBlock("The scheduler runs on-device."), design.Content[0])

		fig, ok := design.Content[1].(paperdoc.Figure)
		require.True(t, ok)
		assert.Equal(t, "https://dl.acm.org/cms/asset/fig1-large.png", fig.RemoteURL)
		assert.Equal(t, "images/fig_0000000000000001.png", fig.LocalPath)
		assert.Equal(t, "Figure 1: System overview.", fig.Caption)
		assert.Equal(t, "fig1", fig.FigureID)
	})

	t.Run("resolves figure URLs against the effective login URL", func(t *testing.T) {
		t.Parallel()

		session, _ := acmSession(t, acmArticleHTML)
		session.AwaitLoginFn = func(_ context.Context) (string, error) {
			return "https://dl-acm-org.proxy.example.edu/doi/10.1145/1234567.8901234", nil
		}
		s := goquery.NewACMScraper(nil)

		paper, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{
			DOI:       "10.1145/1234567.8901234",
			OutputDir: t.TempDir(),
		})

		require.NoError(t, err)
		fig, ok := paper.Sections[1].Content[1].(paperdoc.Figure)
		require.True(t, ok)
		assert.Equal(t, "https://dl-acm-org.proxy.example.edu/cms/asset/fig1-large.png", fig.RemoteURL)
	})

	t.Run("applies the proxy template to the landing URL", func(t *testing.T) {
		t.Parallel()

		session, navigated := acmSession(t, acmArticleHTML)
		s := goquery.NewACMScraper(nil)

		_, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{
			DOI:           "10.1145/1234567.8901234",
			OutputDir:     t.TempDir(),
			ProxyTemplate: "https://proxy.example.edu/login?url=%u",
		})

		require.NoError(t, err)
		require.Len(t, *navigated, 1)
		assert.Equal(t, "https://proxy.example.edu/login?url=https%3A%2F%2Fdl.acm.org%2Fdoi%2F10.1145%2F1234567.8901234", (*navigated)[0])
	})

	t.Run("retries the fullHtml endpoint when the landing page has no bodymatter", func(t *testing.T) {
		t.Parallel()

		landing := `<html><body><h1 property="name">Legacy Paper</h1></body></html>`
		fullText := `<html><body><div class="article__body">
			<h2>Background</h2>
			<div role="paragraph">Older layout content.</div>
		</div></body></html>`

		pages := []string{landing, fullText}
		session, navigated := acmSession(t, "")
		session.HTMLFn = func(_ context.Context) (string, error) {
			html := pages[0]
			pages = pages[1:]
			return html, nil
		}
		s := goquery.NewACMScraper(nil)

		paper, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{
			DOI:       "10.1145/999.888",
			OutputDir: t.TempDir(),
		})

		require.NoError(t, err)
		require.Len(t, *navigated, 2)
		assert.Equal(t, "https://dl.acm.org/doi/fullHtml/10.1145/999.888", (*navigated)[1])

		require.Len(t, paper.Sections, 1)
		assert.Equal(t, "Background", paper.Sections[0].Heading)
		assert.Equal(t, paperdoc.TextBlock("Older layout content."), paper.Sections[0].Content[0])
	})

	t.Run("falls back to recovery extractor when no sections found", func(t *testing.T) {
		t.Parallel()

		session, _ := acmSession(t, `<html><body><h1 property="name">Empty Paper</h1></body></html>`)
		s := goquery.NewACMScraper(&mock.BodyExtractor{
			ExtractTextFn: func(_ string) (string, error) {
				return "Recovered body text.", nil
			},
		})

		paper, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{
			DOI:       "10.1145/1.2",
			OutputDir: t.TempDir(),
		})

		require.NoError(t, err)
		require.Len(t, paper.Sections, 1)
		assert.Empty(t, paper.Sections[0].Heading)
		assert.Equal(t, paperdoc.TextBlock("Recovered body text."), paper.Sections[0].Content[0])
	})

	t.Run("synthesizes an abstract section when nothing else is available", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1 property="name">Abstract Only</h1>
			<section id="summary-abstract"><div role="paragraph">Just the abstract text here.</div></section>
		</body></html>`
		session, _ := acmSession(t, html)
		s := goquery.NewACMScraper(nil)

		paper, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{
			DOI:       "10.1145/3.4",
			OutputDir: t.TempDir(),
		})

		require.NoError(t, err)
		require.Len(t, paper.Sections, 1)
		assert.Equal(t, "Abstract", paper.Sections[0].Heading)
		assert.Equal(t, paperdoc.TextBlock("Just the abstract text here."), paper.Sections[0].Content[0])
	})

	t.Run("returns error when navigation fails", func(t *testing.T) {
		t.Parallel()

		session, _ := acmSession(t, acmArticleHTML)
		session.NavigateFn = func(_ context.Context, _ string) error {
			return paperdoc.Errorf(paperdoc.EUNAVAILABLE, "net::ERR_CONNECTION_RESET")
		}
		s := goquery.NewACMScraper(nil)

		_, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{DOI: "10.1145/5.6"})

		require.Error(t, err)
		assert.Equal(t, paperdoc.EUNAVAILABLE, paperdoc.ErrorCode(err))
	})

	t.Run("drops figures without an image source", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1 property="name">Figureless</h1>
			<section id="bodymatter"><section id="s1">
				<h2>Results</h2>
				<div role="paragraph">Numbers improved.</div>
				<div class="figure-wrap"><figure id="fig9"></figure></div>
			</section></section>
		</body></html>`
		session, _ := acmSession(t, html)
		s := goquery.NewACMScraper(nil)

		paper, err := s.Scrape(context.Background(), session, paperdoc.ScrapeTarget{
			DOI:       "10.1145/7.8",
			OutputDir: t.TempDir(),
		})

		require.NoError(t, err)
		require.Len(t, paper.Sections, 1)
		require.Len(t, paper.Sections[0].Content, 1)
		assert.Equal(t, paperdoc.TextBlock("Numbers improved."), paper.Sections[0].Content[0])
	})
}
