package mock

import (
	"github.com/fwojciec/paperdoc"
)

var _ paperdoc.BodyExtractor = (*BodyExtractor)(nil)

// BodyExtractor is a mock implementation of paperdoc.BodyExtractor.
type BodyExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *BodyExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
