package mock

import (
	"context"
	"time"

	"github.com/fwojciec/paperdoc"
)

var _ paperdoc.Session = (*Session)(nil)

// Session is a mock implementation of paperdoc.Session.
type Session struct {
	NavigateFn        func(ctx context.Context, url string) error
	CurrentURLFn      func(ctx context.Context) (string, error)
	WaitVisibleFn     func(ctx context.Context, selector string, timeout time.Duration) error
	AwaitLoginFn      func(ctx context.Context) (string, error)
	TriggerLazyLoadFn func(ctx context.Context) error
	HTMLFn            func(ctx context.Context) (string, error)
	DownloadImageFn   func(ctx context.Context, url, outputDir, referer string) string
	CloseFn           func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return s.CurrentURLFn(ctx)
}

func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return s.WaitVisibleFn(ctx, selector, timeout)
}

func (s *Session) AwaitLogin(ctx context.Context) (string, error) {
	return s.AwaitLoginFn(ctx)
}

func (s *Session) TriggerLazyLoad(ctx context.Context) error {
	return s.TriggerLazyLoadFn(ctx)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) DownloadImage(ctx context.Context, url, outputDir, referer string) string {
	return s.DownloadImageFn(ctx, url, outputDir, referer)
}

func (s *Session) Close() error {
	return s.CloseFn()
}
