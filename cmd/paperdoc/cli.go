package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/paperdoc"
	"github.com/fwojciec/paperdoc/goquery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Resolver paperdoc.Resolver
	Scrapers *goquery.Registry
	Ledger   paperdoc.ScrapeLedger

	// OpenSession starts a browser session. Opened lazily so that commands
	// that never touch the browser don't pay for one.
	OpenSession func(ctx context.Context, cookiesPath string, headless bool) (paperdoc.Session, error)

	// NewWriter creates a paper writer rooted at dir.
	NewWriter func(dir string) paperdoc.PaperWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch FetchCmd `cmd:"" help:"Fetch a paper by DOI and save it as Markdown"`
	List  ListCmd  `cmd:"" help:"List previously fetched papers"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	DOI      string `arg:"" help:"DOI, or any string containing one (URL, citation)"`
	Output   string `short:"o" default:"." help:"Output directory for the Markdown file and figures"`
	Cookies  string `short:"c" help:"Path to a cookies JSON file (loaded before and saved after the scrape)"`
	Proxy    string `short:"p" help:"Institutional proxy URL template (%u = encoded URL, %h = host, %p = path)"`
	Headless bool   `short:"H" help:"Run the browser without a window (breaks interactive login and trips some bot checks)"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}
