package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/paperdoc"
)

// Ensure LoggingResolver implements paperdoc.Resolver.
var _ paperdoc.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with logging.
type LoggingResolver struct {
	next   paperdoc.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next paperdoc.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, input string) (resolved *paperdoc.ResolvedDOI, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"input", input,
			"duration", time.Since(begin),
			"err", err,
		}
		if resolved != nil {
			attrs = append(attrs, "doi", resolved.DOI, "publisher", resolved.Publisher)
		}
		r.logger.Info("resolve", attrs...)
	}(time.Now())
	return r.next.Resolve(ctx, input)
}
