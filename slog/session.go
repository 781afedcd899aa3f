// Package slog provides logging decorators for the paperdoc service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/paperdoc"
)

// Ensure LoggingSession implements paperdoc.Session.
var _ paperdoc.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with logging.
type LoggingSession struct {
	next   paperdoc.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next paperdoc.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Navigate logs the URL being navigated to and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// CurrentURL delegates to the wrapped session.
func (s *LoggingSession) CurrentURL(ctx context.Context) (string, error) {
	return s.next.CurrentURL(ctx)
}

// WaitVisible logs the landmark selector outcome and delegates.
func (s *LoggingSession) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("wait visible",
			"selector", selector,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WaitVisible(ctx, selector, timeout)
}

// AwaitLogin delegates to the wrapped session, logging the effective URL.
func (s *LoggingSession) AwaitLogin(ctx context.Context) (url string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("await login",
			"effective_url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AwaitLogin(ctx)
}

// TriggerLazyLoad delegates to the wrapped session.
func (s *LoggingSession) TriggerLazyLoad(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("lazy load", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.TriggerLazyLoad(ctx)
}

// HTML delegates to the wrapped session, logging the serialized size.
func (s *LoggingSession) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("html",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HTML(ctx)
}

// DownloadImage delegates to the wrapped session, logging the result path.
func (s *LoggingSession) DownloadImage(ctx context.Context, url, outputDir, referer string) (path string) {
	defer func(begin time.Time) {
		s.logger.Info("download image",
			"url", url,
			"path", path,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.DownloadImage(ctx, url, outputDir, referer)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
