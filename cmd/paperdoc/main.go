package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/paperdoc"
	"github.com/fwojciec/paperdoc/fs"
	"github.com/fwojciec/paperdoc/goquery"
	paperhttp "github.com/fwojciec/paperdoc/http"
	"github.com/fwojciec/paperdoc/readability"
	"github.com/fwojciec/paperdoc/rod"
	paperslog "github.com/fwojciec/paperdoc/slog"
	"github.com/fwojciec/paperdoc/sqlite"
	"github.com/fwojciec/paperdoc/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the scrape ledger.
	DB *sqlite.DB

	// Ledger for end-to-end testing.
	Ledger paperdoc.ScrapeLedger
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("paperdoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'paperdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Fetch.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAPERDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Ledger = sqlite.NewLedgerService(m.DB)
	deps.Ledger = m.Ledger
	deps.Resolver = paperslog.NewLoggingResolver(paperhttp.NewResolver(), logger)

	// Recovery runs trafilatura first and falls back to readability, which
	// copes better with pages trafilatura classifies as boilerplate.
	recovery := ChainExtractor{trafilatura.NewExtractor(), readability.NewExtractor()}
	deps.Scrapers = goquery.NewRegistry()
	deps.Scrapers.Register(goquery.NewACMScraper(recovery))
	deps.Scrapers.Register(goquery.NewIEEEScraper(recovery))

	deps.OpenSession = func(ctx context.Context, cookiesPath string, headless bool) (paperdoc.Session, error) {
		session, err := rod.Open(ctx, rod.Options{
			CookiesPath: cookiesPath,
			Headless:    headless,
			Stderr:      stderr,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		return paperslog.NewLoggingSession(session, logger), nil
	}

	deps.NewWriter = func(dir string) paperdoc.PaperWriter {
		return fs.NewWriter(dir)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PAPERDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "paperdoc.db"
	}
	dir := filepath.Join(home, ".paperdoc")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "paperdoc.db")
}
