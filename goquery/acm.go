package goquery

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/paperdoc"
)

// acmBase is the ACM Digital Library origin. Full text is embedded on the
// landing page at /doi/<DOI>; a separate /doi/fullHtml/<DOI> endpoint exists
// for older layouts.
const acmBase = "https://dl.acm.org"

// Ensure ACMScraper implements paperdoc.Scraper at compile time.
var _ paperdoc.Scraper = (*ACMScraper)(nil)

// ACMScraper extracts papers from the ACM Digital Library (dl.acm.org).
//
// Key DOM patterns, verified against real ACM HTML:
//   - title:      h1[property="name"]
//   - authors:    span[property="author"] with givenName/familyName spans
//   - abstract:   #summary-abstract div[role="paragraph"]
//   - keywords:   #sec-terms a
//   - body:       section#bodymatter with nested section[id] per section
//   - paragraphs: div[role="paragraph"], not <p>
//   - figures:    .figure-wrap with img[data-viewer-src] for hi-res
type ACMScraper struct {
	// Recovery, when set, extracts generic body text after both the
	// bodymatter and fullHtml strategies find nothing.
	Recovery paperdoc.BodyExtractor
}

// NewACMScraper creates a new ACMScraper with the given recovery extractor.
// recovery may be nil.
func NewACMScraper(recovery paperdoc.BodyExtractor) *ACMScraper {
	return &ACMScraper{Recovery: recovery}
}

// Publisher returns "acm".
func (s *ACMScraper) Publisher() string {
	return "acm"
}

// Scrape fetches the ACM landing page and extracts the paper.
func (s *ACMScraper) Scrape(ctx context.Context, session paperdoc.Session, target paperdoc.ScrapeTarget) (*paperdoc.Paper, error) {
	paper := &paperdoc.Paper{
		DOI:       target.DOI,
		Publisher: s.Publisher(),
		SourceURL: target.URL,
	}

	landingURL := acmBase + "/doi/" + target.DOI
	if err := session.Navigate(ctx, paperdoc.ApplyProxyTemplate(target.ProxyTemplate, landingURL)); err != nil {
		return nil, err
	}
	if effective, err := session.AwaitLogin(ctx); err == nil && effective != "" {
		landingURL = effective
	}
	// Landmark wait is best-effort; Cloudflare interstitials sometimes eat it.
	_ = session.WaitVisible(ctx, `h1[property="name"]`, 15*time.Second)

	html, err := session.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	paper.Title = firstText(doc, `h1[property="name"]`)
	s.extractAuthors(doc, paper)
	paper.Abstract = s.extractAbstract(doc)
	s.extractKeywords(doc, paper)

	body := doc.Find("section#bodymatter").First()
	if body.Length() > 0 {
		paper.Sections = s.extractSections(ctx, body, session, target.OutputDir, landingURL)
	} else {
		paper.Sections = s.scrapeFullHTML(ctx, session, target)
	}

	if len(paper.Sections) == 0 {
		paper.Sections = recoverBody(s.Recovery, html)
	}
	if len(paper.Sections) == 0 && paper.Abstract != "" {
		paper.Sections = abstractSection(paper.Abstract)
	}

	return paper, nil
}

// scrapeFullHTML retries section extraction against the fullHtml endpoint,
// used when the landing page carries no bodymatter (older article layouts).
func (s *ACMScraper) scrapeFullHTML(ctx context.Context, session paperdoc.Session, target paperdoc.ScrapeTarget) []paperdoc.Section {
	fullTextURL := acmBase + "/doi/fullHtml/" + target.DOI
	if err := session.Navigate(ctx, paperdoc.ApplyProxyTemplate(target.ProxyTemplate, fullTextURL)); err != nil {
		return nil
	}
	_ = session.WaitVisible(ctx, "h2", 15*time.Second)

	html, err := session.HTML(ctx)
	if err != nil {
		return nil
	}
	doc, err := parse(html)
	if err != nil {
		return nil
	}

	body := doc.Find(".article__body, .hlFld-Fulltext, section#bodymatter").First()
	if body.Length() == 0 {
		return nil
	}
	return s.extractSections(ctx, body, session, target.OutputDir, fullTextURL)
}

// extractAuthors collects "Given Family" names from the author spans,
// de-duplicated in order of appearance.
func (s *ACMScraper) extractAuthors(doc *goquery.Document, paper *paperdoc.Paper) {
	doc.Find(`span[property="author"][typeof="Person"]`).Each(func(_ int, author *goquery.Selection) {
		given := paperdoc.CleanText(author.Find(`span[property="givenName"]`).First().Text())
		family := paperdoc.CleanText(author.Find(`span[property="familyName"]`).First().Text())
		if given != "" && family != "" {
			paper.AddAuthor(given + " " + family)
		}
	})
}

// extractAbstract joins the abstract's paragraph divs into one string.
func (s *ACMScraper) extractAbstract(doc *goquery.Document) string {
	var parts []string
	doc.Find(`#summary-abstract div[role="paragraph"]`).Each(func(_ int, p *goquery.Selection) {
		if text := paperdoc.CleanText(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// extractKeywords reads the index-terms section links.
func (s *ACMScraper) extractKeywords(doc *goquery.Document, paper *paperdoc.Paper) {
	doc.Find("#sec-terms a").Each(func(_ int, a *goquery.Selection) {
		paper.AddKeyword(paperdoc.CleanText(a.Text()))
	})
}

// extractSections walks the bodymatter. ACM nests content inside explicit
// section[id] containers, so section boundaries come from container
// boundaries; the flat heading walk is only a fallback for degenerate markup.
func (s *ACMScraper) extractSections(ctx context.Context, body *goquery.Selection, session paperdoc.Session, outputDir, baseURL string) []paperdoc.Section {
	var sections []paperdoc.Section

	containers := body.Find("section[id]")
	if containers.Length() == 0 {
		return s.extractFlat(ctx, body, session, outputDir, baseURL)
	}

	containers.Each(func(_ int, container *goquery.Selection) {
		if section, ok := s.extractSingleSection(ctx, container, session, outputDir, baseURL); ok {
			sections = append(sections, section)
		}
	})
	return sections
}

// extractSingleSection converts one section container into a Section:
// heading from its first h2-h4, then each child classified as paragraph,
// list, figure, or ignored. Nested section elements are skipped here since
// the container query above already visits them.
func (s *ACMScraper) extractSingleSection(ctx context.Context, container *goquery.Selection, session paperdoc.Session, outputDir, baseURL string) (paperdoc.Section, bool) {
	heading := container.Find("h2, h3, h4").First()
	if heading.Length() == 0 {
		return paperdoc.Section{}, false
	}

	section := paperdoc.Section{
		Heading: paperdoc.CleanText(heading.Text()),
		Level:   headingLevel(goquery.NodeName(heading), 2),
	}

	container.Children().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) != "div" {
			return
		}
		role := child.AttrOr("role", "")
		class := child.AttrOr("class", "")

		switch {
		case role == "paragraph":
			if text := paperdoc.CleanText(child.Text()); text != "" {
				section.Content = append(section.Content, paperdoc.TextBlock(text))
			}
		case role == "list" || strings.Contains(child.AttrOr("data-type", ""), "bullet"):
			if list := s.extractList(child); list != "" {
				section.Content = append(section.Content, paperdoc.TextBlock(list))
			}
		case strings.Contains(class, "figure-wrap"):
			if fig, ok := s.extractFigure(ctx, child, session, outputDir, baseURL); ok {
				section.Content = append(section.Content, fig)
			}
		}
	})

	if len(section.Content) == 0 && section.Heading == "" {
		return paperdoc.Section{}, false
	}
	return section, true
}

// extractFlat handles bodymatter without nested section containers: every
// heading opens a new section and subsequent siblings attach to it.
func (s *ACMScraper) extractFlat(ctx context.Context, body *goquery.Selection, session paperdoc.Session, outputDir, baseURL string) []paperdoc.Section {
	var sections []paperdoc.Section

	body.Children().Each(func(_ int, child *goquery.Selection) {
		tag := goquery.NodeName(child)

		switch {
		case tag == "h2" || tag == "h3" || tag == "h4":
			sections = append(sections, paperdoc.Section{
				Heading: paperdoc.CleanText(child.Text()),
				Level:   headingLevel(tag, 2),
			})
		case tag == "div" && len(sections) > 0:
			current := &sections[len(sections)-1]
			if child.AttrOr("role", "") == "paragraph" {
				if text := paperdoc.CleanText(child.Text()); text != "" {
					current.Content = append(current.Content, paperdoc.TextBlock(text))
				}
			} else if strings.Contains(child.AttrOr("class", ""), "figure-wrap") {
				if fig, ok := s.extractFigure(ctx, child, session, outputDir, baseURL); ok {
					current.Content = append(current.Content, fig)
				}
			}
		}
	})
	return sections
}

// extractFigure pulls the image out of a figure wrapper. The viewer's hi-res
// attribute wins over the inline src. Figure elements without an image are
// discarded entirely.
func (s *ACMScraper) extractFigure(ctx context.Context, wrap *goquery.Selection, session paperdoc.Session, outputDir, baseURL string) (paperdoc.Figure, bool) {
	img := wrap.Find("figure.graphic img, figure img, img").First()
	if img.Length() == 0 {
		return paperdoc.Figure{}, false
	}

	src := imageSource(img, "data-viewer-src", "src")
	remoteURL := absoluteURL(baseURL, src)
	if remoteURL == "" {
		return paperdoc.Figure{}, false
	}

	caption := paperdoc.CleanText(wrap.Find(`figcaption div[role="paragraph"], figcaption`).First().Text())
	label := paperdoc.CleanText(wrap.Find(".core-label").First().Text())

	return paperdoc.Figure{
		RemoteURL: remoteURL,
		LocalPath: session.DownloadImage(ctx, remoteURL, outputDir, baseURL),
		Caption:   captionWithLabel(label, caption),
		FigureID:  wrap.Find("figure[id]").First().AttrOr("id", ""),
	}, true
}

// extractList flattens a div[role="list"] into bullet-joined lines.
func (s *ACMScraper) extractList(list *goquery.Selection) string {
	var lines []string
	list.Find(`div[role="listitem"]`).Each(func(_ int, item *goquery.Selection) {
		content := item.Find(`.content div[role="paragraph"]`).First()
		if text := paperdoc.CleanText(content.Text()); text != "" {
			lines = append(lines, "- "+text)
		}
	})
	return strings.Join(lines, "\n")
}
