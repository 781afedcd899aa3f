// Package rod provides the browser-backed implementation of paperdoc.Session
// using Chrome automation via go-rod.
package rod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/paperdoc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/time/rate"
)

// Defaults for session pacing. All waits are local and best-effort; a
// timed-out sub-step degrades to whatever page state exists.
const (
	DefaultSettleDelay       = 5 * time.Second
	DefaultLoginWait         = 2 * time.Minute
	DefaultLoginPollInterval = 2 * time.Second
	DefaultScrollIncrement   = 600
	DefaultMaxScrolls        = 50
	DefaultScrollPause       = 150 * time.Millisecond

	// downloadRPS paces in-page image fetches so a figure-heavy paper does
	// not trip the publisher's rate limiting.
	downloadRPS = 2
)

// Ensure Session implements paperdoc.Session at compile time.
var _ paperdoc.Session = (*Session)(nil)

// Options configures a Session.
type Options struct {
	// CookiesPath names a cookie-export JSON file. When the file exists its
	// cookies are loaded before any navigation; on Close the session's
	// cookies are always written back. Empty disables cookie persistence.
	CookiesPath string

	// Headless runs Chrome without a window. Publishers behind Cloudflare
	// (notably ACM) tend to block headless fingerprints, and a visible
	// window is required for interactive login anyway, so the default is
	// headed.
	Headless bool

	// SettleDelay is the fixed wait after each navigation.
	SettleDelay time.Duration

	// LoginWait bounds how long AwaitLogin polls for the operator.
	LoginWait time.Duration

	// LoginPollInterval is the URL re-check interval during AwaitLogin.
	LoginPollInterval time.Duration

	// Stderr receives operator guidance during login waits.
	// Defaults to os.Stderr.
	Stderr io.Writer

	// Logger receives structured session events. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o *Options) applyDefaults() {
	if o.SettleDelay == 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.LoginWait == 0 {
		o.LoginWait = DefaultLoginWait
	}
	if o.LoginPollInterval == 0 {
		o.LoginPollInterval = DefaultLoginPollInterval
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Session is one browser tab owned by a single scrape. It is not safe for
// concurrent use; the cookie file it reads and rewrites makes concurrent
// sessions over the same path unsafe by design.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	opts     Options
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// Open launches a browser, loads cookies if configured, and returns a ready
// Session. Close must be called on every exit path.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func Open(ctx context.Context, opts Options) (*Session, error) {
	opts.applyDefaults()

	// Automation fingerprinting suppressed for bot detection; certificate
	// validation relaxed because EZProxy domain rewriting (e.g.
	// ieeexplore.ieee.org.proxy.edu) breaks wildcard cert hostname matching.
	lnchr := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("ignore-certificate-errors").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		NoSandbox(true).
		Leakless(true).
		Headless(opts.Headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	s := &Session{
		browser:  browser,
		launcher: lnchr,
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Limit(downloadRPS), 1),
		logger:   opts.Logger,
	}

	// Cookies load before any navigation so the first request already
	// carries the session. Failure to read the file is never fatal.
	if err := s.loadCookies(); err != nil {
		s.logger.Warn("cookie load failed", "path", opts.CookiesPath, "err", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		s.teardown()
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	s.page = page.Context(ctx)

	return s, nil
}

// Close writes session cookies back to the cookie file when one was
// configured, then releases browser resources. The cookie write-back is
// unconditional so a completed login flow survives into the next run.
func (s *Session) Close() error {
	if err := s.saveCookies(); err != nil {
		s.logger.Warn("cookie save failed", "path", s.opts.CookiesPath, "err", err)
	}
	return s.teardown()
}

func (s *Session) teardown() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// Navigate loads url and waits for the page to settle.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return paperdoc.Errorf(paperdoc.EUNAVAILABLE, "navigation to %s failed: %v", url, err)
	}
	// WaitLoad failing just means the load event never fired (common on
	// heavy SPA pages); the settle delay still gives the app time to paint.
	if err := page.WaitLoad(); err != nil {
		s.logger.Debug("load event not observed", "url", url, "err", err)
	}
	return sleep(ctx, s.opts.SettleDelay)
}

// CurrentURL returns the tab's current URL after any redirects.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// WaitVisible waits up to timeout for an element matching selector.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	page := s.page.Context(ctx).Timeout(timeout)
	el, err := page.Element(selector)
	if err != nil {
		return err
	}
	return el.WaitVisible()
}

// AwaitLogin checks the current URL for an authentication wall and, when one
// is present, polls until the operator completes the login or LoginWait
// elapses. Cookies are saved the moment the wall clears (the session may be
// ephemeral) and the page is reloaded once so client-side rendering
// re-initializes with the new session. Reaching the ceiling is not an error.
func (s *Session) AwaitLogin(ctx context.Context) (string, error) {
	return awaitLogin(ctx, s.opts, s.logger, s.CurrentURL, s.saveCookies, func(ctx context.Context) error {
		return s.page.Context(ctx).Reload()
	})
}

// scrollScript scrolls by a fixed increment with a short pause, bounded by a
// maximum scroll count or the measured document height.
const scrollScript = `async (distance, maxScrolls, pauseMs) => {
	let totalHeight = 0;
	for (let i = 0; i < maxScrolls; i++) {
		window.scrollBy(0, distance);
		totalHeight += distance;
		await new Promise(r => setTimeout(r, pauseMs));
		if (totalHeight >= document.body.scrollHeight) {
			break;
		}
	}
}`

// TriggerLazyLoad scrolls the viewport incrementally so publishers that
// stream content in on scroll materialize the full article.
func (s *Session) TriggerLazyLoad(ctx context.Context) error {
	page := s.page.Context(ctx).Timeout(15 * time.Second)
	_, err := page.Eval(scrollScript, DefaultScrollIncrement, DefaultMaxScrolls, DefaultScrollPause.Milliseconds())
	if err != nil {
		return fmt.Errorf("lazy-load scroll: %w", err)
	}
	return sleep(ctx, 2*time.Second)
}

// HTML returns the fully-rendered DOM serialization.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", paperdoc.Errorf(paperdoc.EUNAVAILABLE, "reading rendered HTML: %v", err)
	}
	return html, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
