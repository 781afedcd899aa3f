package mock

import (
	"context"

	"github.com/fwojciec/paperdoc"
)

var _ paperdoc.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of paperdoc.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, input string) (*paperdoc.ResolvedDOI, error)
}

func (r *Resolver) Resolve(ctx context.Context, input string) (*paperdoc.ResolvedDOI, error) {
	return r.ResolveFn(ctx, input)
}
