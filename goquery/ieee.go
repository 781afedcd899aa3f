package goquery

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/paperdoc"
)

// Ensure IEEEScraper implements paperdoc.Scraper at compile time.
var _ paperdoc.Scraper = (*IEEEScraper)(nil)

// IEEEScraper extracts papers from IEEE Xplore (ieeexplore.ieee.org).
//
// Xplore is an Angular application: the initial HTML is an empty shell and
// the article only exists after client-side rendering, so the session must
// be a real browser and lazy-loaded content has to be scrolled into view
// before reading the DOM. Class names shift between Xplore releases, which
// is why every lookup runs through a candidate selector chain.
type IEEEScraper struct {
	// Recovery, when set, extracts generic body text when no selector
	// chain matches the rendered page.
	Recovery paperdoc.BodyExtractor
}

// NewIEEEScraper creates a new IEEEScraper with the given recovery
// extractor. recovery may be nil.
func NewIEEEScraper(recovery paperdoc.BodyExtractor) *IEEEScraper {
	return &IEEEScraper{Recovery: recovery}
}

// Publisher returns "ieee".
func (s *IEEEScraper) Publisher() string {
	return "ieee"
}

// Scrape renders the Xplore document page and extracts the paper.
func (s *IEEEScraper) Scrape(ctx context.Context, session paperdoc.Session, target paperdoc.ScrapeTarget) (*paperdoc.Paper, error) {
	paper := &paperdoc.Paper{
		DOI:       target.DOI,
		Publisher: s.Publisher(),
		SourceURL: target.URL,
	}

	baseURL := target.URL
	if err := session.Navigate(ctx, paperdoc.ApplyProxyTemplate(target.ProxyTemplate, target.URL)); err != nil {
		return nil, err
	}
	if effective, err := session.AwaitLogin(ctx); err == nil && effective != "" {
		// Proxied sessions rewrite the host, so resolve images against
		// the URL the browser actually landed on.
		baseURL = effective
	}
	_ = session.WaitVisible(ctx, ".document-title", 20*time.Second)
	// A scroll timeout is survivable; whatever has rendered is still extracted.
	_ = session.TriggerLazyLoad(ctx)

	html, err := session.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	paper.Title = firstText(doc,
		"h1.document-title span",
		"h1.document-title",
		".document-title",
		".title-wrapper h1",
	)
	s.extractAuthors(doc, paper)
	paper.Abstract = abstractText(doc,
		"div[xplmathjax]",
		".abstract-text div",
		".abstract-text",
		"#abstractSection p",
	)
	s.extractKeywords(doc, paper)

	paper.Sections = s.extractSections(ctx, doc, session, target.OutputDir, baseURL)

	if len(paper.Sections) == 0 {
		paper.Sections = recoverBody(s.Recovery, html)
	}
	if len(paper.Sections) == 0 && paper.Abstract != "" {
		paper.Sections = abstractSection(paper.Abstract)
	}

	return paper, nil
}

func (s *IEEEScraper) extractAuthors(doc *goquery.Document, paper *paperdoc.Paper) {
	doc.Find(`.authors-info span.author-name, [class*="author"] a span, .authors-container .author-card span`).Each(func(_ int, span *goquery.Selection) {
		name := paperdoc.CleanText(span.Text())
		// Author widgets repeat names across nested spans and also hold
		// affiliation links; keep plausible person names only.
		if name != "" && len(name) > 2 {
			paper.AddAuthor(name)
		}
	})
}

func (s *IEEEScraper) extractKeywords(doc *goquery.Document, paper *paperdoc.Paper) {
	doc.Find(`.stats-keywords-container .keyword a, [class*="keyword"] a, .doc-keywords-list li`).Each(func(_ int, kw *goquery.Selection) {
		paper.AddKeyword(paperdoc.CleanText(kw.Text()))
	})
}

// extractSections locates the article body and walks it. Xplore renders the
// full text as a flat stream of headings, paragraphs and figures rather than
// nested section containers, so the flat walk is the primary strategy; the
// container walk covers the older div.section layout.
func (s *IEEEScraper) extractSections(ctx context.Context, doc *goquery.Document, session paperdoc.Session, outputDir, baseURL string) []paperdoc.Section {
	body := doc.Find(".article-body, .document-text, #article, .section-body").First()
	if body.Length() > 0 {
		if sections := s.extractFlat(ctx, body, session, outputDir, baseURL); len(sections) > 0 {
			return sections
		}
	}

	var sections []paperdoc.Section
	doc.Find("div.section, .document-section, section[id]").Each(func(_ int, container *goquery.Selection) {
		heading := container.Find("h2, h3, h4").First()
		if heading.Length() == 0 {
			return
		}
		section := paperdoc.Section{
			Heading: paperdoc.CleanText(heading.Text()),
			Level:   headingLevel(goquery.NodeName(heading), 2),
		}
		container.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := paperdoc.CleanText(p.Text()); text != "" {
				section.Content = append(section.Content, paperdoc.TextBlock(text))
			}
		})
		container.Find("figure").Each(func(_ int, fig *goquery.Selection) {
			if figure, ok := s.extractFigure(ctx, fig, session, outputDir, baseURL); ok {
				section.Content = append(section.Content, figure)
			}
		})
		if len(section.Content) > 0 || section.Heading != "" {
			sections = append(sections, section)
		}
	})
	return sections
}

// extractFlat walks the body as a heading/paragraph/figure stream. Leading
// paragraphs before any heading open an untitled section so no text is lost;
// figures that render before their section attach to the last one seen.
func (s *IEEEScraper) extractFlat(ctx context.Context, body *goquery.Selection, session paperdoc.Session, outputDir, baseURL string) []paperdoc.Section {
	var sections []paperdoc.Section

	body.Find("h2, h3, h4, p, figure").Each(func(_ int, node *goquery.Selection) {
		tag := goquery.NodeName(node)

		switch tag {
		case "h2", "h3", "h4":
			sections = append(sections, paperdoc.Section{
				Heading: paperdoc.CleanText(node.Text()),
				Level:   headingLevel(tag, 2),
			})
		case "p":
			text := paperdoc.CleanText(node.Text())
			if text == "" {
				return
			}
			if len(sections) == 0 {
				sections = append(sections, paperdoc.Section{Level: 2})
			}
			current := &sections[len(sections)-1]
			current.Content = append(current.Content, paperdoc.TextBlock(text))
		case "figure":
			if len(sections) == 0 {
				return
			}
			if figure, ok := s.extractFigure(ctx, node, session, outputDir, baseURL); ok {
				current := &sections[len(sections)-1]
				current.Content = append(current.Content, figure)
			}
		}
	})
	return sections
}

// extractFigure reads a rendered figure element. Lazy-loaded images keep
// their URL in data-src until scrolled into view, so both attributes are
// consulted.
func (s *IEEEScraper) extractFigure(ctx context.Context, fig *goquery.Selection, session paperdoc.Session, outputDir, baseURL string) (paperdoc.Figure, bool) {
	img := fig.Find("img").First()
	if img.Length() == 0 {
		return paperdoc.Figure{}, false
	}

	src := imageSource(img, "src", "data-src")
	remoteURL := absoluteURL(baseURL, src)
	if remoteURL == "" {
		return paperdoc.Figure{}, false
	}

	caption := paperdoc.CleanText(fig.Find("figcaption, .figcaption, .fig-caption, .caption").First().Text())

	return paperdoc.Figure{
		RemoteURL: remoteURL,
		LocalPath: session.DownloadImage(ctx, remoteURL, outputDir, baseURL),
		Caption:   caption,
		FigureID:  fig.AttrOr("id", ""),
	}, true
}
