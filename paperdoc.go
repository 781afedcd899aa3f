// Package paperdoc scrapes academic papers by DOI and reconstructs them as
// structured documents. It resolves a DOI to a publisher landing page, renders
// the page through a real browser to get past bot detection, and walks the
// publisher-specific HTML to recover title, authors, abstract, keywords,
// sections and figures.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package paperdoc
