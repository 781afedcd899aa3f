package rod

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// loginIndicators are URL substrings that mark an authentication wall.
var loginIndicators = []string{"/login", "/idp/", "/cas/", "shibboleth", "auth"}

func isLoginURL(u string) bool {
	lower := strings.ToLower(u)
	for _, ind := range loginIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// awaitLogin holds the login-wait policy separately from the browser so the
// poll loop is testable with fake URL, save and reload funcs.
func awaitLogin(
	ctx context.Context,
	opts Options,
	logger *slog.Logger,
	currentURL func(ctx context.Context) (string, error),
	saveCookies func() error,
	reload func(ctx context.Context) error,
) (string, error) {
	current, err := currentURL(ctx)
	if err != nil {
		return "", err
	}
	if !isLoginURL(current) {
		return current, nil
	}

	fmt.Fprintln(opts.Stderr)
	fmt.Fprintln(opts.Stderr, "  Login required.")
	fmt.Fprintln(opts.Stderr, "  Please log in using the browser window that opened; the scrape")
	fmt.Fprintln(opts.Stderr, "  continues automatically once you reach the paper page.")
	fmt.Fprintln(opts.Stderr)

	deadline := time.Now().Add(opts.LoginWait)
	for time.Now().Before(deadline) {
		if err := sleep(ctx, opts.LoginPollInterval); err != nil {
			return current, err
		}

		current, err = currentURL(ctx)
		if err != nil {
			return "", err
		}
		if isLoginURL(current) {
			continue
		}

		fmt.Fprintf(opts.Stderr, "  Login detected, continuing with %s\n", current)
		if err := saveCookies(); err != nil {
			logger.Warn("cookie save after login failed", "err", err)
		}
		if err := reload(ctx); err != nil {
			logger.Warn("reload after login failed", "err", err)
		}
		return current, sleep(ctx, opts.SettleDelay)
	}

	fmt.Fprintln(opts.Stderr, "  Login wait timed out; proceeding with current page state.")
	return current, nil
}
