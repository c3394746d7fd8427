package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/infra-client/internal/rest"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
)

// ResourceClient provides a generic typed client for one registered resource.
type ResourceClient[T infra.Resource] struct {
	engine *rest.Engine
	desc   infra.Descriptor
}

// NewResourceClient creates a new generic resource client.
func NewResourceClient[T infra.Resource](engine *rest.Engine, desc infra.Descriptor) *ResourceClient[T] {
	return &ResourceClient[T]{
		engine: engine,
		desc:   desc,
	}
}

// Create posts entities in one request and returns them as created, in input order.
func (c *ResourceClient[T]) Create(ctx context.Context, entities []T, query infra.Query, opts ...infra.CallOption) ([]T, error) {
	items := make([]any, len(entities))
	for i, entity := range entities {
		items[i] = entity
	}

	created, err := c.engine.Create(ctx, c.desc, items, query, opts...)
	if err != nil {
		return nil, err
	}

	return convertAll[T](c.desc, created)
}

// Get retrieves one entity by id.
func (c *ResourceClient[T]) Get(ctx context.Context, id string, query infra.Query, opts ...infra.CallOption) (T, error) {
	res, err := c.engine.GetByID(ctx, c.desc, id, query, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return convert[T](c.desc, res)
}

// Query enumerates every matching entity lazily.
func (c *ResourceClient[T]) Query(ctx context.Context, query infra.Query, limit int, opts ...infra.CallOption) *infra.Iterator[T] {
	return infra.MapIterator(c.engine.GetAll(ctx, c.desc, query, limit, opts...), func(res infra.Resource) (T, error) {
		return convert[T](c.desc, res)
	})
}

// Page retrieves one page of entities.
func (c *ResourceClient[T]) Page(ctx context.Context, query infra.Query, cursor string, limit int, opts ...infra.CallOption) (infra.Page[T], error) {
	page, err := c.engine.GetPage(ctx, c.desc, query, cursor, limit, opts...)
	if err != nil {
		return infra.Page[T]{}, err
	}

	items, err := convertAll[T](c.desc, page.Items)
	if err != nil {
		return infra.Page[T]{}, err
	}

	return infra.Page[T]{Items: items, Cursor: page.Cursor}, nil
}

// Update patches one entity.
func (c *ResourceClient[T]) Update(ctx context.Context, id string, patch map[string]any, opts ...infra.CallOption) (T, error) {
	res, err := c.engine.Update(ctx, c.desc, id, patch, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return convert[T](c.desc, res)
}

// Cancel deletes one entity and returns its final state.
func (c *ResourceClient[T]) Cancel(ctx context.Context, id string, opts ...infra.CallOption) (T, error) {
	res, err := c.engine.Delete(ctx, c.desc, id, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return convert[T](c.desc, res)
}

// BalanceClient reads a balance exposed as a one-element collection.
type BalanceClient[T infra.Resource] struct {
	engine *rest.Engine
	desc   infra.Descriptor
}

// NewBalanceClient creates a new balance client.
func NewBalanceClient[T infra.Resource](engine *rest.Engine, desc infra.Descriptor) *BalanceClient[T] {
	return &BalanceClient[T]{
		engine: engine,
		desc:   desc,
	}
}

// Get retrieves the current balance.
func (c *BalanceClient[T]) Get(ctx context.Context, opts ...infra.CallOption) (T, error) {
	res, err := c.engine.GetSingleton(ctx, c.desc, nil, opts...)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("getting %s: %w", rest.LastName(c.desc.Name), err)
	}

	return convert[T](c.desc, res)
}

// RawClient addresses any registered resource by name.
type RawClient struct {
	engine *rest.Engine
}

// NewRawClient creates a new raw client.
func NewRawClient(engine *rest.Engine) *RawClient {
	return &RawClient{engine: engine}
}

// Get retrieves one entity of the named resource.
func (c *RawClient) Get(ctx context.Context, name, id string, query infra.Query, opts ...infra.CallOption) (infra.Resource, error) {
	desc, err := c.engine.Registry().Lookup(name)
	if err != nil {
		return nil, err
	}

	return c.engine.GetByID(ctx, desc, id, query, opts...)
}

// Query enumerates the named resource lazily. An unknown name yields an
// iterator whose only element is the lookup error.
func (c *RawClient) Query(ctx context.Context, name string, query infra.Query, limit int, opts ...infra.CallOption) *infra.Iterator[infra.Resource] {
	desc, err := c.engine.Registry().Lookup(name)
	if err != nil {
		return infra.NewIterator(ctx, func(context.Context, string, int) (infra.Page[infra.Resource], error) {
			return infra.Page[infra.Resource]{}, err
		}, nil)
	}

	return c.engine.GetAll(ctx, desc, query, limit, opts...)
}

// Page retrieves one page of the named resource.
func (c *RawClient) Page(ctx context.Context, name string, query infra.Query, cursor string, limit int, opts ...infra.CallOption) (infra.Page[infra.Resource], error) {
	desc, err := c.engine.Registry().Lookup(name)
	if err != nil {
		return infra.Page[infra.Resource]{}, err
	}

	return c.engine.GetPage(ctx, desc, query, cursor, limit, opts...)
}

// Stream reads the named resource page by page on demand. An unknown name
// yields a stream whose only page carries the lookup error.
func (c *RawClient) Stream(ctx context.Context, name string, query infra.Query, pagination *infra.PaginationOptions, opts ...infra.CallOption) *infra.PageStream[infra.Resource] {
	desc, err := c.engine.Registry().Lookup(name)
	if err != nil {
		return infra.StreamPages(ctx, func(context.Context, string, int) (infra.Page[infra.Resource], error) {
			return infra.Page[infra.Resource]{}, err
		}, pagination)
	}

	return c.engine.StreamAll(ctx, desc, query, pagination, opts...)
}

func convert[T infra.Resource](desc infra.Descriptor, res infra.Resource) (T, error) {
	typed, ok := res.(T)
	if !ok {
		var zero T

		return zero, &infra.DecodeError{Path: desc.Name, Expected: fmt.Sprintf("%T", zero), Actual: fmt.Sprintf("%T", res)}
	}

	return typed, nil
}

func convertAll[T infra.Resource](desc infra.Descriptor, resources []infra.Resource) ([]T, error) {
	out := make([]T, 0, len(resources))

	for _, res := range resources {
		typed, err := convert[T](desc, res)
		if err != nil {
			return nil, err
		}

		out = append(out, typed)
	}

	return out, nil
}

var (
	_ infra.IssuingCardsClient                   = (*ResourceClient[*infra.IssuingCard])(nil)
	_ infra.LogClient[*infra.IssuingCardLog]     = (*ResourceClient[*infra.IssuingCardLog])(nil)
	_ infra.BalanceClient[*infra.IssuingBalance] = (*BalanceClient[*infra.IssuingBalance])(nil)
	_ infra.Lister[*infra.MerchantCountry]       = (*ResourceClient[*infra.MerchantCountry])(nil)
	_ infra.RawClient                            = (*RawClient)(nil)
)
