package paperdoc

import (
	"context"
	"time"
)

// ScrapeRecord is one entry in the scrape ledger: a paper that was scraped
// and where its Markdown ended up.
type ScrapeRecord struct {
	ID         string    `json:"id"`
	DOI        string    `json:"doi"`
	Title      string    `json:"title"`
	Publisher  string    `json:"publisher"`
	OutputPath string    `json:"outputPath"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ScrapeRecord) Validate() error {
	if r.DOI == "" {
		return Errorf(EINVALID, "scrape record DOI required")
	}
	return nil
}

// ScrapeLedger records completed scrapes. Re-scraping a DOI appends a new
// record; the ledger is a history, not a cache.
type ScrapeLedger interface {
	// RecordScrape appends a record, assigning ID and FetchedAt.
	RecordScrape(ctx context.Context, rec *ScrapeRecord) error

	// ListScrapes returns all records, most recent first.
	ListScrapes(ctx context.Context) ([]*ScrapeRecord, error)
}
