package paperdoc

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// doiRE matches a DOI embedded in any string: "10." followed by a 4-9 digit
// registrant code, a slash, and a non-whitespace suffix.
var doiRE = regexp.MustCompile(`10\.\d{4,9}/\S+`)

// ExtractDOI extracts a DOI from any input: a plain DOI, a doi.org URL, a
// publisher URL, or any string containing a DOI pattern. Trailing punctuation
// that tends to ride along when DOIs are pasted out of prose is stripped.
func ExtractDOI(input string) (string, error) {
	match := doiRE.FindString(strings.TrimSpace(input))
	if match == "" {
		return "", Errorf(EINVALID, "could not extract a DOI from input: %q (expected formats: '10.XXXX/...', 'https://doi.org/10.XXXX/...', or a publisher URL containing a DOI)", input)
	}
	return strings.TrimRight(match, ".,;:)"), nil
}

// prefixPublishers maps known DOI registrant prefixes to publisher identifiers.
var prefixPublishers = map[string]string{
	"10.1145": "acm",
	"10.1109": "ieee",
	"10.1007": "springer",
	"10.1016": "elsevier",
	"10.1038": "nature",
	"10.1126": "science",
}

// domainPublishers maps landing-page domain substrings to publisher
// identifiers. Used as a fallback when the DOI prefix is unknown.
var domainPublishers = []struct {
	domain    string
	publisher string
}{
	{"dl.acm.org", "acm"},
	{"ieeexplore.ieee.org", "ieee"},
	{"link.springer.com", "springer"},
	{"sciencedirect.com", "elsevier"},
	{"nature.com", "nature"},
	{"science.org", "science"},
	{"arxiv.org", "arxiv"},
}

// PublisherForDOI returns the publisher identifier for a DOI based on its
// registrant prefix, or "" if the prefix is unknown.
func PublisherForDOI(doi string) string {
	for prefix, publisher := range prefixPublishers {
		if strings.HasPrefix(doi, prefix) {
			return publisher
		}
	}
	return ""
}

// PublisherForURL returns the publisher identifier for a resolved landing-page
// URL based on its host, or "" if the host is unrecognized.
func PublisherForURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, d := range domainPublishers {
		if strings.Contains(host, d.domain) {
			return d.publisher
		}
	}
	return ""
}

// ResolvedDOI is the result of DOI resolution.
type ResolvedDOI struct {
	// DOI is the extracted DOI, e.g. "10.1145/3746059.3747603".
	DOI string

	// Publisher is the canonical publisher identifier, e.g. "acm".
	Publisher string

	// URL is the publisher landing page the DOI resolves to.
	URL string

	// PublisherName is the registrant's display name when metadata
	// enrichment succeeded, e.g. "Association for Computing Machinery".
	// Empty when enrichment was unavailable.
	PublisherName string
}

// Resolver resolves any DOI-bearing input to a publisher and landing URL.
type Resolver interface {
	// Resolve extracts the DOI from input and determines its publisher and
	// landing URL. Returns EINVALID if no DOI pattern is present and
	// EUNSUPPORTED if a publisher cannot be determined.
	Resolve(ctx context.Context, input string) (*ResolvedDOI, error)
}
