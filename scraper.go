package paperdoc

import (
	"context"
	"time"
)

// Session is one authenticated, anti-bot-resistant browser tab, owned
// exclusively by a single scrape for its lifetime. All blocking operations
// take a context; timeouts on sub-steps are local and best-effort.
//
// Sessions are not safe for concurrent use. Close must be called on every
// exit path: it carries the cookie write-back side effect.
type Session interface {
	// Navigate loads url in the tab and waits for the page to settle.
	// Navigation failure is a fatal transport error.
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the tab's current URL after any redirects.
	CurrentURL(ctx context.Context) (string, error)

	// WaitVisible waits up to timeout for a publisher landmark element.
	// Callers treat a timeout as non-fatal.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// AwaitLogin detects an authentication wall from the current URL and,
	// if present, polls until the operator completes the login or a bounded
	// ceiling is reached. Returns the effective URL either way; reaching
	// the ceiling is not an error.
	AwaitLogin(ctx context.Context) (string, error)

	// TriggerLazyLoad scrolls the viewport incrementally to force deferred
	// content to materialize. Callers treat a failure as non-fatal and
	// extract whatever has rendered.
	TriggerLazyLoad(ctx context.Context) error

	// HTML returns the fully-rendered DOM serialization.
	HTML(ctx context.Context) (string, error)

	// DownloadImage fetches url from inside the page context so cookies and
	// anti-bot clearance match the HTML fetch, writing the bytes under
	// outputDir/images/ with a content-addressed name. Returns the relative
	// path, or "" on any failure; an empty path means the figure's asset is
	// unavailable, never that the scrape should abort.
	DownloadImage(ctx context.Context, url, outputDir, referer string) string

	// Close releases browser resources and writes session cookies back to
	// the cookie file when one was configured.
	Close() error
}

// ScrapeTarget identifies the paper a Scraper should extract and where its
// assets go.
type ScrapeTarget struct {
	// DOI of the paper, e.g. "10.1145/3746059.3747603".
	DOI string

	// URL is the resolved landing page.
	URL string

	// OutputDir is where downloaded figures are stored (under images/).
	OutputDir string

	// ProxyTemplate, when non-empty, rewrites every navigated URL through
	// an institutional proxy. See ApplyProxyTemplate.
	ProxyTemplate string
}

// Scraper extracts a structured Paper from a publisher's rendered pages.
// Implementations drive the Session themselves: navigation, login waits,
// lazy-load triggering and figure downloads all go through it, which keeps
// the browser dependency explicit and fakeable in tests.
type Scraper interface {
	// Publisher returns the canonical publisher identifier, e.g. "acm".
	Publisher() string

	// Scrape fetches and extracts the paper. Selector misses degrade to
	// empty fields; only transport failures return an error.
	Scrape(ctx context.Context, session Session, target ScrapeTarget) (*Paper, error)
}

// BodyExtractor recovers main body text from rendered HTML when every
// publisher-specific section strategy came up empty.
type BodyExtractor interface {
	// ExtractText returns the page's main content as normalized plain text.
	ExtractText(html string) (string, error)
}
