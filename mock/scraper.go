package mock

import (
	"context"

	"github.com/fwojciec/paperdoc"
)

var _ paperdoc.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of paperdoc.Scraper.
type Scraper struct {
	PublisherFn func() string
	ScrapeFn    func(ctx context.Context, session paperdoc.Session, target paperdoc.ScrapeTarget) (*paperdoc.Paper, error)
}

func (s *Scraper) Publisher() string {
	return s.PublisherFn()
}

func (s *Scraper) Scrape(ctx context.Context, session paperdoc.Session, target paperdoc.ScrapeTarget) (*paperdoc.Paper, error) {
	return s.ScrapeFn(ctx, session, target)
}
