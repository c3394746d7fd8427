package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/infra-client/pkg/infra"
)

// GetPage fetches one page. limit is clamped to [1, infra.MaxPageSize], with
// zero meaning the maximum. An empty cursor requests the first page.
func (e *Engine) GetPage(ctx context.Context, desc infra.Descriptor, query infra.Query, cursor string, limit int, opts ...infra.CallOption) (infra.Page[infra.Resource], error) {
	q := query.Clone()
	q["cursor"] = cursor
	q["limit"] = infra.ClampPageSize(limit)

	value, err := e.send(ctx, opts, http.MethodGet, desc.Name, "", q, nil)
	if err != nil {
		return infra.Page[infra.Resource]{}, fmt.Errorf("listing %s: %w", LastNamePlural(desc.Name), err)
	}

	items, next, err := e.list(desc, value)
	if err != nil {
		return infra.Page[infra.Resource]{}, fmt.Errorf("listing %s: %w", LastNamePlural(desc.Name), err)
	}

	resources, err := e.registry.ConstructAll(desc.Name, items)
	if err != nil {
		return infra.Page[infra.Resource]{}, err
	}

	return infra.Page[infra.Resource]{Items: resources, Cursor: next}, nil
}

// GetAll enumerates the collection lazily, one full page at a time. When
// limit > 0 no more than limit items are yielded and the last request asks
// only for what is still missing.
func (e *Engine) GetAll(ctx context.Context, desc infra.Descriptor, query infra.Query, limit int, opts ...infra.CallOption) *infra.Iterator[infra.Resource] {
	fetch := func(ctx context.Context, cursor string, size int) (infra.Page[infra.Resource], error) {
		return e.GetPage(ctx, desc, query, cursor, size, opts...)
	}

	return infra.NewIterator(ctx, fetch, &infra.PaginationOptions{PageSize: infra.MaxPageSize, Limit: limit})
}

// StreamAll streams the collection page by page, fetching a page only when
// the consumer asks for it. A nil pagination reads full pages from the start.
func (e *Engine) StreamAll(ctx context.Context, desc infra.Descriptor, query infra.Query, pagination *infra.PaginationOptions, opts ...infra.CallOption) *infra.PageStream[infra.Resource] {
	fetch := func(ctx context.Context, cursor string, size int) (infra.Page[infra.Resource], error) {
		return e.GetPage(ctx, desc, query, cursor, size, opts...)
	}

	return infra.StreamPages(ctx, fetch, pagination)
}
