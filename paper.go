package paperdoc

import (
	"context"
	"regexp"
	"strings"
)

// Paper is the complete structured representation of a scraped paper.
// It is constructed empty at the start of a scrape, populated field by field
// as the publisher DOM is walked, and treated as immutable once returned.
type Paper struct {
	DOI       string    `json:"doi"`
	Title     string    `json:"title"`
	Publisher string    `json:"publisher"`
	SourceURL string    `json:"sourceUrl"`
	Authors   []string  `json:"authors"`
	Keywords  []string  `json:"keywords"`
	Abstract  string    `json:"abstract"`
	Sections  []Section `json:"sections"`
}

// PaperWriter persists an extracted paper as a Markdown document and returns
// the path it was written to.
type PaperWriter interface {
	SavePaper(ctx context.Context, paper *Paper) (string, error)
}

// Validate returns an error if the paper contains invalid fields.
func (p *Paper) Validate() error {
	if p.DOI == "" {
		return Errorf(EINVALID, "paper DOI required")
	}
	return nil
}

// AddAuthor appends an author, skipping empty names and exact duplicates.
// Insertion order mirrors order of appearance in the source markup.
func (p *Paper) AddAuthor(name string) {
	if name == "" {
		return
	}
	for _, a := range p.Authors {
		if a == name {
			return
		}
	}
	p.Authors = append(p.Authors, name)
}

// AddKeyword appends a keyword, de-duplicating while preserving the first
// occurrence.
func (p *Paper) AddKeyword(kw string) {
	if kw == "" {
		return
	}
	for _, k := range p.Keywords {
		if k == kw {
			return
		}
	}
	p.Keywords = append(p.Keywords, kw)
}

// Section is a heading plus its content blocks in document order.
// Sections form a flat ordered list at the paper level; the source markup on
// both supported publishers is itself flat, so no section tree is modeled.
type Section struct {
	// Heading may be empty for an unlabeled leading block.
	Heading string `json:"heading"`

	// Level mirrors the source heading rank (2 for h2, etc.).
	Level int `json:"level"`

	Content []ContentBlock `json:"content"`
}

// ContentBlock is a tagged union of TextBlock and Figure.
// The set of implementations is closed.
type ContentBlock interface {
	contentBlock()
}

// TextBlock is a normalized run of paragraph text.
type TextBlock string

func (TextBlock) contentBlock() {}

// Figure is an image extracted from the paper. A Figure is only constructed
// when a resolvable remote URL exists; LocalPath stays empty when the
// download failed or was skipped.
type Figure struct {
	RemoteURL string `json:"remoteUrl"`
	LocalPath string `json:"localPath"`
	Caption   string `json:"caption"`
	FigureID  string `json:"figureId"`
}

func (Figure) contentBlock() {}

var whitespaceRE = regexp.MustCompile(`\s+`)

// CleanText collapses internal whitespace runs to a single space and trims
// leading and trailing whitespace. Callers treat an empty result as absent.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}
