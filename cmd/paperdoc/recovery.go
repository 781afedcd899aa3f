package main

import (
	"github.com/fwojciec/paperdoc"
)

// Compile-time interface verification.
var _ paperdoc.BodyExtractor = (ChainExtractor)(nil)

// ChainExtractor tries each extractor in order and returns the first
// non-empty result. Errors are swallowed until the last extractor; recovery
// extraction is already a best-effort path.
type ChainExtractor []paperdoc.BodyExtractor

// ExtractText implements paperdoc.BodyExtractor.
func (c ChainExtractor) ExtractText(html string) (string, error) {
	var lastErr error
	for _, e := range c {
		text, err := e.ExtractText(html)
		if err != nil {
			lastErr = err
			continue
		}
		if text != "" {
			return text, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", nil
}
