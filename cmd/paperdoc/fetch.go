package main

import (
	"fmt"

	"github.com/fwojciec/paperdoc"
)

// Run executes the fetch command: resolve the DOI, drive a browser session
// through the publisher's scraper, render Markdown, and record the scrape.
func (c *FetchCmd) Run(deps *Dependencies) error {
	resolved, err := deps.Resolver.Resolve(deps.Ctx, c.DOI)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperdoc.ErrorMessage(err))
		return err
	}

	scraper, err := deps.Scrapers.Get(resolved.Publisher)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperdoc.ErrorMessage(err))
		return err
	}

	session, err := deps.OpenSession(deps.Ctx, c.Cookies, c.Headless)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	paper, err := scraper.Scrape(deps.Ctx, session, paperdoc.ScrapeTarget{
		DOI:           resolved.DOI,
		URL:           resolved.URL,
		OutputDir:     c.Output,
		ProxyTemplate: c.Proxy,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperdoc.ErrorMessage(err))
		return err
	}

	writer := deps.NewWriter(c.Output)
	path, err := writer.SavePaper(deps.Ctx, paper)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperdoc.ErrorMessage(err))
		return err
	}

	// Ledger writes are best-effort: a failed insert must not discard a
	// scrape that already produced its output file.
	rec := &paperdoc.ScrapeRecord{
		DOI:        paper.DOI,
		Title:      paper.Title,
		Publisher:  paper.Publisher,
		OutputPath: path,
	}
	if err := deps.Ledger.RecordScrape(deps.Ctx, rec); err != nil {
		deps.Logger.Warn("failed to record scrape", "doi", paper.DOI, "error", err)
	}

	title := paper.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(deps.Stdout, "Fetched %q [%s]\n", title, paper.Publisher)
	fmt.Fprintf(deps.Stdout, "  authors:  %d\n", len(paper.Authors))
	fmt.Fprintf(deps.Stdout, "  sections: %d\n", len(paper.Sections))
	fmt.Fprintf(deps.Stdout, "  saved to: %s\n", path)

	return nil
}
