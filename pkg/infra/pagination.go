package infra

import (
	"context"
	"iter"
	"sync"

	"github.com/fivetwenty-io/infra-client/internal/constants"
)

// MaxPageSize is the largest page the API serves.
const MaxPageSize = constants.MaxPageSize

// Page is one server page: items in server order and the cursor of the next
// page, empty when there is none.
type Page[T any] struct {
	Items  []T
	Cursor string
}

// HasMore reports whether another page can be requested.
func (p Page[T]) HasMore() bool {
	return p.Cursor != ""
}

// PageFunc fetches the page at cursor holding at most limit items.
// An empty cursor requests the first page.
type PageFunc[T any] func(ctx context.Context, cursor string, limit int) (Page[T], error)

// PaginationOptions controls enumeration.
type PaginationOptions struct {
	// PageSize is the per-request limit, clamped to [1, MaxPageSize]. Zero means MaxPageSize.
	PageSize int
	// Limit caps the total number of items yielded. Zero means no cap.
	Limit int
	// MaxPages caps the number of page requests. Zero means no cap.
	MaxPages int
	// Cursor resumes enumeration at a stored cursor. Empty starts at the first page.
	Cursor string
}

// DefaultPaginationOptions returns options that enumerate everything in full pages.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{PageSize: MaxPageSize}
}

// ClampPageSize bounds a requested page size to what the API accepts.
func ClampPageSize(size int) int {
	if size <= 0 || size > MaxPageSize {
		return MaxPageSize
	}

	return size
}

// pager walks the cursor chain one request at a time.
type pager[T any] struct {
	ctx       context.Context //nolint:containedctx
	fetch     PageFunc[T]
	pageSize  int
	limit     int
	maxPages  int
	remaining int
	pages     int
	cursor    string
	started   bool
}

func newPager[T any](ctx context.Context, fetch PageFunc[T], opts *PaginationOptions) *pager[T] {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	return &pager[T]{
		ctx:       ctx,
		fetch:     fetch,
		pageSize:  ClampPageSize(opts.PageSize),
		limit:     opts.Limit,
		maxPages:  opts.MaxPages,
		remaining: opts.Limit,
		cursor:    opts.Cursor,
	}
}

// next returns the next page's items, or ok=false once the chain is exhausted.
func (p *pager[T]) next() ([]T, bool, error) {
	if p.started && p.cursor == "" {
		return nil, false, nil
	}

	if p.limit > 0 && p.remaining <= 0 {
		return nil, false, nil
	}

	if p.maxPages > 0 && p.pages >= p.maxPages {
		return nil, false, nil
	}

	err := p.ctx.Err()
	if err != nil {
		return nil, false, err
	}

	size := p.pageSize
	if p.limit > 0 && p.remaining < size {
		size = p.remaining
	}

	page, err := p.fetch(p.ctx, p.cursor, size)
	if err != nil {
		return nil, false, err
	}

	p.started = true
	p.pages++
	p.cursor = page.Cursor

	items := page.Items
	if p.limit > 0 {
		if len(items) > p.remaining {
			items = items[:p.remaining]
		}

		p.remaining -= len(items)
	}

	if items == nil {
		items = []T{}
	}

	return items, true, nil
}

// Iterator lazily enumerates a collection. It is single pass and not safe
// for concurrent use.
type Iterator[T any] struct {
	pull     func() ([]T, bool, error)
	buffer   []T
	err      error
	reported bool
	done     bool
}

// NewIterator creates an iterator that requests pages only when the
// previously fetched items have been consumed.
func NewIterator[T any](ctx context.Context, fetch PageFunc[T], opts *PaginationOptions) *Iterator[T] {
	p := newPager(ctx, fetch, opts)

	return &Iterator[T]{pull: p.next}
}

// MapIterator converts the elements of src with fn. A conversion failure ends
// the sequence with that error.
func MapIterator[S, T any](src *Iterator[S], fn func(S) (T, error)) *Iterator[T] {
	return &Iterator[T]{pull: func() ([]T, bool, error) {
		batch, ok, err := src.pull()
		if err != nil || !ok {
			return nil, ok, err
		}

		out := make([]T, 0, len(batch))

		for _, item := range batch {
			converted, err := fn(item)
			if err != nil {
				return nil, false, err
			}

			out = append(out, converted)
		}

		return out, true, nil
	}}
}

// HasNext reports whether Next will return an item or a pending error.
func (it *Iterator[T]) HasNext() bool {
	for len(it.buffer) == 0 && !it.done {
		batch, ok, err := it.pull()
		if err != nil {
			it.err = err
			it.done = true

			break
		}

		if !ok {
			it.done = true

			break
		}

		it.buffer = batch
	}

	return len(it.buffer) > 0 || (it.err != nil && !it.reported)
}

// Next returns the next item. After the last item it returns ErrNoMoreItems.
func (it *Iterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		return zero, ErrNoMoreItems
	}

	if len(it.buffer) == 0 {
		it.reported = true

		return zero, it.err
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// Err returns the error that ended the sequence, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// All drains the iterator.
func (it *Iterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (it *Iterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

// Seq adapts the iterator for range-over-func loops.
func (it *Iterator[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for it.HasNext() {
			item, err := it.Next()
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// FetchAllPages collects every item reachable from the first page.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], opts *PaginationOptions) ([]T, error) {
	return NewIterator(ctx, fetch, opts).All()
}

// PageResult is one page delivered by a PageStream. Cursor is the cursor of
// the following page, empty at the end of the chain.
type PageResult[T any] struct {
	Items  []T
	Cursor string
	Err    error
}

// PageStream delivers pages strictly on demand: each Next call requests one
// page and nothing is fetched between calls. A stream is not safe for
// concurrent use. Close releases the producer when the consumer stops early.
type PageStream[T any] struct {
	demand chan struct{}
	out    chan PageResult[T]
	stop   chan struct{}
	once   sync.Once
}

// StreamPages starts a page stream. The stream ends when the chain ends, on
// the first error, on Close, or when ctx is canceled.
func StreamPages[T any](ctx context.Context, fetch PageFunc[T], opts *PaginationOptions) *PageStream[T] {
	s := &PageStream[T]{
		demand: make(chan struct{}),
		out:    make(chan PageResult[T]),
		stop:   make(chan struct{}),
	}
	p := newPager(ctx, fetch, opts)

	go func() {
		defer close(s.out)

		for {
			select {
			case <-s.demand:
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}

			items, ok, err := p.next()
			if !ok && err == nil {
				return
			}

			// Next is blocked on out after sending demand.
			s.out <- PageResult[T]{Items: items, Cursor: p.cursor, Err: err}

			if err != nil {
				return
			}
		}
	}()

	return s
}

// Next requests and returns the next page. ok is false once the stream ended.
func (s *PageStream[T]) Next() (PageResult[T], bool) {
	select {
	case <-s.stop:
		return PageResult[T]{}, false
	default:
	}

	select {
	case s.demand <- struct{}{}:
	case result, ok := <-s.out:
		return result, ok
	}

	result, ok := <-s.out

	return result, ok
}

// Close stops the stream. It is safe to call more than once.
func (s *PageStream[T]) Close() {
	s.once.Do(func() { close(s.stop) })
}
