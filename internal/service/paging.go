// Package service composes repositories into the operations exposed over HTTP.
package service

import (
	"context"

	"marketplace/internal/feed"
	"marketplace/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// assemble runs one paginated read: span, latency and empty-page metrics,
// caller-relative annotation, then the envelope.
func assemble[T any](
	ctx context.Context,
	resource string,
	v feed.Viewer,
	page feed.Page,
	fetch func(context.Context) ([]T, error),
	annotate func(feed.Viewer, []T),
) (feed.Envelope[T], error) {
	span, ctx := observability.NewSpan(ctx, "feed."+resource,
		attribute.String("viewer", v.Kind().String()),
		attribute.Int("page", page.Number),
		attribute.Int("limit", page.Limit),
	)
	defer span.End()
	done := observability.TrackPage(resource, v.Kind().String())

	items, err := fetch(ctx)
	if err != nil {
		span.SetError(err)
		return feed.Envelope[T]{}, err
	}
	if annotate != nil {
		annotate(v, items)
	}

	env := feed.Paginate(page, items)
	done(len(env.Items))
	span.AddAttributes(attribute.Int("items", len(env.Items)), attribute.Bool("last", env.Last))
	return env, nil
}
