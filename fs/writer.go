// Package fs renders scraped papers to Markdown files on disk.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fwojciec/paperdoc"
)

// SanitizeFilename converts a paper title into a safe filename stem.
// Letters and digits in any script survive, along with spaces, hyphens and
// underscores; everything else becomes an underscore. The result is trimmed
// and capped at 80 runes, and an empty result falls back to "paper".
func SanitizeFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.TrimSpace(b.String())
	if runes := []rune(name); len(runes) > 80 {
		name = strings.TrimSpace(string(runes[:80]))
	}
	if name == "" {
		name = "paper"
	}
	return name
}

// FormatPaper renders a paper as a Markdown document: a metadata header,
// the abstract as a blockquote, then every section in order. Figures render
// as image links against their local path when the download succeeded,
// falling back to the remote URL.
func FormatPaper(paper *paperdoc.Paper) string {
	var b strings.Builder

	title := paper.Title
	if title == "" {
		title = "Untitled Paper"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(paper.Authors) > 0 {
		fmt.Fprintf(&b, "**Authors:** %s\n\n", strings.Join(paper.Authors, ", "))
	}
	fmt.Fprintf(&b, "**DOI:** [%s](https://doi.org/%s)\n\n", paper.DOI, paper.DOI)
	if paper.Publisher != "" {
		fmt.Fprintf(&b, "**Publisher:** %s\n\n", strings.ToUpper(paper.Publisher))
	}
	if paper.SourceURL != "" {
		fmt.Fprintf(&b, "**URL:** [%s](%s)\n\n", paper.SourceURL, paper.SourceURL)
	}
	if len(paper.Keywords) > 0 {
		fmt.Fprintf(&b, "**Keywords:** %s\n\n", strings.Join(paper.Keywords, ", "))
	}

	if paper.Abstract != "" {
		b.WriteString("## Abstract\n\n")
		fmt.Fprintf(&b, "> %s\n\n", paper.Abstract)
	}

	for _, section := range paper.Sections {
		writeSection(&b, section)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSection(b *strings.Builder, section paperdoc.Section) {
	if section.Heading != "" {
		level := section.Level + 1
		if level > 6 {
			level = 6
		}
		if level < 2 {
			level = 2
		}
		fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), section.Heading)
	}

	for _, block := range section.Content {
		switch v := block.(type) {
		case paperdoc.TextBlock:
			fmt.Fprintf(b, "%s\n\n", string(v))
		case paperdoc.Figure:
			writeFigure(b, v)
		}
	}
}

func writeFigure(b *strings.Builder, fig paperdoc.Figure) {
	alt := fig.Caption
	if alt == "" {
		alt = fig.FigureID
	}
	if alt == "" {
		alt = "Figure"
	}

	target := fig.LocalPath
	if target == "" {
		target = fig.RemoteURL
	}
	if target == "" {
		return
	}

	fmt.Fprintf(b, "![%s](%s)\n\n", alt, target)
	if fig.Caption != "" {
		fmt.Fprintf(b, "*%s*\n\n", fig.Caption)
	}
}

// Ensure Writer implements paperdoc.PaperWriter at compile time.
var _ paperdoc.PaperWriter = (*Writer)(nil)

// Writer writes papers as Markdown files into a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes into baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// SavePaper renders the paper and writes it to <baseDir>/<sanitized title>.md,
// creating the directory if needed. Returns the written path.
func (w *Writer) SavePaper(ctx context.Context, paper *paperdoc.Paper) (string, error) {
	if err := paper.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return "", paperdoc.Errorf(paperdoc.EINTERNAL, "creating output directory: %v", err)
	}

	path := filepath.Join(w.baseDir, SanitizeFilename(paper.Title)+".md")
	if err := os.WriteFile(path, []byte(FormatPaper(paper)), 0o644); err != nil {
		return "", paperdoc.Errorf(paperdoc.EINTERNAL, "writing paper: %v", err)
	}
	return path, nil
}
