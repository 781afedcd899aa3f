// Package http resolves DOIs to publisher landing pages using the doi.org
// registry over plain HTTP.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/paperdoc"
)

// DefaultTimeout is the default timeout for registry requests.
const DefaultTimeout = 15 * time.Second

// defaultBaseURL is the DOI registry endpoint. The handle API lives under
// /api/handles/, plain GETs redirect to the publisher, and content
// negotiation serves Crossref metadata.
const defaultBaseURL = "https://doi.org"

// Ensure Resolver implements paperdoc.Resolver at compile time.
var _ paperdoc.Resolver = (*Resolver)(nil)

// Resolver resolves DOI-bearing input to a publisher identifier and landing
// URL. It asks the handle API first and falls back to following the
// registry's redirect when the API call fails or returns no URL.
type Resolver struct {
	client  *http.Client
	baseURL string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClient sets the HTTP client. Defaults to a client with DefaultTimeout.
func WithClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.client = c
	}
}

// WithBaseURL overrides the DOI registry base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(r *Resolver) {
		r.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewResolver creates a new Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: DefaultTimeout}
	}
	return r
}

// Resolve extracts the DOI from input and determines its publisher and
// landing URL.
func (r *Resolver) Resolve(ctx context.Context, input string) (*paperdoc.ResolvedDOI, error) {
	doi, err := paperdoc.ExtractDOI(input)
	if err != nil {
		return nil, err
	}

	// The prefix table wins over whatever the redirect target says.
	publisher := paperdoc.PublisherForDOI(doi)

	resolvedURL, err := r.resolveURL(ctx, doi)
	if err != nil {
		return nil, err
	}

	if publisher == "" {
		publisher = paperdoc.PublisherForURL(resolvedURL)
	}
	if publisher == "" {
		return nil, paperdoc.Errorf(paperdoc.EUNSUPPORTED,
			"could not determine publisher for DOI %q (resolved URL: %s); this publisher may not be supported yet", doi, resolvedURL)
	}

	return &paperdoc.ResolvedDOI{
		DOI:           doi,
		Publisher:     publisher,
		URL:           resolvedURL,
		PublisherName: r.publisherName(ctx, doi),
	}, nil
}

// resolveURL turns a DOI into its landing URL via the handle API, falling
// back to redirect-following when the API fails or has no URL value.
func (r *Resolver) resolveURL(ctx context.Context, doi string) (string, error) {
	if u, err := r.resolveViaHandleAPI(ctx, doi); err == nil && u != "" {
		return u, nil
	}
	return r.resolveViaRedirect(ctx, doi)
}

// handleResponse is the subset of the handle API response we consume.
type handleResponse struct {
	Values []struct {
		Type string `json:"type"`
		Data struct {
			Value string `json:"value"`
		} `json:"data"`
	} `json:"values"`
}

func (r *Resolver) resolveViaHandleAPI(ctx context.Context, doi string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/handles/"+doi, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from handle API", resp.StatusCode)
	}

	var decoded handleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}

	for _, v := range decoded.Values {
		if v.Type == "URL" {
			return v.Data.Value, nil
		}
	}
	return "", nil
}

func (r *Resolver) resolveViaRedirect(ctx context.Context, doi string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+doi, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", paperdoc.Errorf(paperdoc.EUNAVAILABLE, "DOI resolution failed for %q: %v", doi, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the body itself is irrelevant.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.Request.URL.String(), nil
}

// publisherName fetches Crossref UNIXREF metadata via content negotiation and
// returns the registrant's display name. Best-effort: any failure returns "".
func (r *Resolver) publisherName(ctx context.Context, doi string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+doi, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/vnd.crossref.unixref+xml")

	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return ""
	}

	// Conference and book deposits carry an explicit publisher_name; journal
	// deposits only carry the journal title.
	if el := doc.FindElement("//publisher_name"); el != nil {
		return paperdoc.CleanText(el.Text())
	}
	if el := doc.FindElement("//journal_metadata/full_title"); el != nil {
		return paperdoc.CleanText(el.Text())
	}
	return ""
}
