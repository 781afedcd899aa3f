package mock

import (
	"context"

	"github.com/fwojciec/paperdoc"
)

var _ paperdoc.PaperWriter = (*PaperWriter)(nil)

// PaperWriter is a mock implementation of paperdoc.PaperWriter.
type PaperWriter struct {
	SavePaperFn func(ctx context.Context, paper *paperdoc.Paper) (string, error)
}

func (w *PaperWriter) SavePaper(ctx context.Context, paper *paperdoc.Paper) (string, error) {
	return w.SavePaperFn(ctx, paper)
}
