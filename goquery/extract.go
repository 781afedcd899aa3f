// Package goquery provides the publisher-specific extraction engines that
// turn rendered publisher HTML into a structured paperdoc.Paper, plus the
// registry that selects an engine by publisher identifier.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/paperdoc"
)

// parse builds a queryable document from rendered HTML.
func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, paperdoc.Errorf(paperdoc.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// firstText tries an ordered list of selector candidates and returns the
// first match whose normalized text is non-empty. Publisher markup varies by
// access path (direct vs proxied vs cached), so no single selector is
// reliable.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		var text string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = paperdoc.CleanText(s.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// abstractText is firstText with the abstract plausibility filter: candidates
// shorter than 20 characters or that are just the literal "Abstract:" label
// are markup noise, not the abstract.
func abstractText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		var text string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			candidate := paperdoc.CleanText(s.Text())
			if len(candidate) > 20 && !strings.HasSuffix(strings.ToLower(candidate), "abstract:") {
				text = candidate
				return false
			}
			return true
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// absoluteURL resolves ref against base. Scheme-relative URLs get "https:"
// prefixed; an unparseable ref resolves to "".
func absoluteURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}

// headingLevel maps a heading tag name ("h2") to its rank, with a fallback
// for non-heading elements promoted to section headers.
func headingLevel(tag string, fallback int) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return fallback
}

// imageSource returns the first non-empty attribute from attrs, preferring
// earlier entries. Engines list their hi-res attribute before "src".
func imageSource(img *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if v, ok := img.Attr(attr); ok && v != "" {
			return v
		}
	}
	return ""
}

// captionWithLabel concatenates a figure label (e.g. "Figure 3") with the
// caption body when both exist.
func captionWithLabel(label, caption string) string {
	switch {
	case label != "" && caption != "":
		return label + " " + caption
	case label != "":
		return label
	default:
		return caption
	}
}

// recoverBody runs the generic body extractor over the rendered HTML and
// wraps whatever it finds in a single heading-less section. Used only after
// every publisher-specific strategy found nothing.
func recoverBody(extractor paperdoc.BodyExtractor, html string) []paperdoc.Section {
	if extractor == nil {
		return nil
	}
	text, err := extractor.ExtractText(html)
	if err != nil {
		return nil
	}
	text = paperdoc.CleanText(text)
	if text == "" {
		return nil
	}
	return []paperdoc.Section{
		{Heading: "", Level: 2, Content: []paperdoc.ContentBlock{paperdoc.TextBlock(text)}},
	}
}

// abstractSection synthesizes the guaranteed fallback section: a document is
// never entirely empty when an abstract was recoverable.
func abstractSection(abstract string) []paperdoc.Section {
	return []paperdoc.Section{
		{Heading: "Abstract", Level: 2, Content: []paperdoc.ContentBlock{paperdoc.TextBlock(abstract)}},
	}
}
