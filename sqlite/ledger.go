package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/paperdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ paperdoc.ScrapeLedger = (*LedgerService)(nil)

// fetchedAtLayout is RFC 3339 with a fixed-width fraction so stored strings
// sort chronologically. RFC3339Nano drops trailing zeros, which breaks
// lexicographic ordering.
const fetchedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// LedgerService implements paperdoc.ScrapeLedger using SQLite.
type LedgerService struct {
	db *DB
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(db *DB) *LedgerService {
	return &LedgerService{db: db}
}

// RecordScrape appends a record, assigning its ID and fetch timestamp.
func (s *LedgerService) RecordScrape(ctx context.Context, rec *paperdoc.ScrapeRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.FetchedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrapes (id, doi, title, publisher, output_path, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.DOI, rec.Title, rec.Publisher, rec.OutputPath, rec.FetchedAt.Format(fetchedAtLayout))

	return err
}

// ListScrapes returns all records, most recent first.
func (s *LedgerService) ListScrapes(ctx context.Context) ([]*paperdoc.ScrapeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doi, title, publisher, output_path, fetched_at
		FROM scrapes
		ORDER BY fetched_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*paperdoc.ScrapeRecord
	for rows.Next() {
		var rec paperdoc.ScrapeRecord
		var fetchedAt string

		if err := rows.Scan(&rec.ID, &rec.DOI, &rec.Title, &rec.Publisher, &rec.OutputPath, &fetchedAt); err != nil {
			return nil, err
		}

		rec.FetchedAt, err = time.Parse(fetchedAtLayout, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
		}

		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
