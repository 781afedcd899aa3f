package mock

import (
	"context"

	"github.com/fwojciec/paperdoc"
)

var _ paperdoc.ScrapeLedger = (*ScrapeLedger)(nil)

// ScrapeLedger is a mock implementation of paperdoc.ScrapeLedger.
type ScrapeLedger struct {
	RecordScrapeFn func(ctx context.Context, rec *paperdoc.ScrapeRecord) error
	ListScrapesFn  func(ctx context.Context) ([]*paperdoc.ScrapeRecord, error)
}

func (l *ScrapeLedger) RecordScrape(ctx context.Context, rec *paperdoc.ScrapeRecord) error {
	return l.RecordScrapeFn(ctx, rec)
}

func (l *ScrapeLedger) ListScrapes(ctx context.Context) ([]*paperdoc.ScrapeRecord, error) {
	return l.ListScrapesFn(ctx)
}
