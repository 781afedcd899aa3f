package goquery

import (
	"sort"
	"strings"

	"github.com/fwojciec/paperdoc"
)

// Registry maps canonical publisher identifiers to their extraction engines.
type Registry struct {
	scrapers map[string]paperdoc.Scraper
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: make(map[string]paperdoc.Scraper)}
}

// Register adds a scraper under its publisher identifier, replacing any
// previous registration.
func (r *Registry) Register(s paperdoc.Scraper) {
	r.scrapers[strings.ToLower(s.Publisher())] = s
}

// Get returns the scraper for a publisher identifier. The lookup is
// case-insensitive. An unrecognized identifier is a configuration error and
// reports the supported identifiers.
func (r *Registry) Get(publisher string) (paperdoc.Scraper, error) {
	s, ok := r.scrapers[strings.ToLower(publisher)]
	if !ok {
		return nil, paperdoc.Errorf(paperdoc.EUNSUPPORTED,
			"no scraper available for publisher %q; supported publishers: %s",
			publisher, strings.Join(r.List(), ", "))
	}
	return s, nil
}

// List returns the registered publisher identifiers, sorted.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.scrapers))
	for id := range r.scrapers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
