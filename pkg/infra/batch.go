package infra

import (
	"context"
	"errors"
	"sync"
	"time"
)

const defaultBatchConcurrency = 5

// ErrBatchFailed is returned by BatchResults.Err when an operation failed.
var ErrBatchFailed = errors.New("batch operation failed")

// BatchResult is the outcome of one operation of a batch.
type BatchResult[T any] struct {
	ID       string
	Data     T
	Error    error
	Duration time.Duration
}

// Success reports whether the operation completed.
func (r BatchResult[T]) Success() bool {
	return r.Error == nil
}

// BatchResults holds results in the order the ids were given.
type BatchResults[T any] []BatchResult[T]

// Err joins the errors of failed operations, or returns nil.
func (r BatchResults[T]) Err() error {
	var errs []error

	for _, result := range r {
		if result.Error != nil {
			errs = append(errs, result.Error)
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Join(append([]error{ErrBatchFailed}, errs...)...)
}

// Values returns the data of successful operations.
func (r BatchResults[T]) Values() []T {
	out := make([]T, 0, len(r))

	for _, result := range r {
		if result.Error == nil {
			out = append(out, result.Data)
		}
	}

	return out
}

// BatchExecutor runs per-id operations with bounded concurrency. Each
// operation gets its own timeout.
type BatchExecutor struct {
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor. Non-positive concurrency
// means 5.
func NewBatchExecutor(concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	return &BatchExecutor{concurrency: concurrency}
}

// SetTimeout sets the timeout for each operation. Zero leaves only the
// caller's deadline.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// RunBatch calls op for every id. It never stops early; results keep the
// order of ids.
func RunBatch[T any](ctx context.Context, b *BatchExecutor, ids []string, op func(ctx context.Context, id string) (T, error)) BatchResults[T] {
	if b == nil {
		b = NewBatchExecutor(0)
	}

	results := make(BatchResults[T], len(ids))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, id := range ids {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			opCtx := ctx

			if b.timeout > 0 {
				var cancel context.CancelFunc

				opCtx, cancel = context.WithTimeout(ctx, b.timeout)
				defer cancel()
			}

			start := time.Now()
			data, err := op(opCtx, id)

			results[index] = BatchResult[T]{ID: id, Data: data, Error: err, Duration: time.Since(start)}
		}()
	}

	waitGroup.Wait()

	return results
}

// GetMany fetches every id through getter.
func GetMany[T any](ctx context.Context, b *BatchExecutor, getter Getter[T], ids []string, query Query, opts ...CallOption) BatchResults[T] {
	return RunBatch(ctx, b, ids, func(ctx context.Context, id string) (T, error) {
		return getter.Get(ctx, id, query, opts...)
	})
}

// CancelMany cancels every id through canceler.
func CancelMany[T any](ctx context.Context, b *BatchExecutor, canceler Canceler[T], ids []string, opts ...CallOption) BatchResults[T] {
	return RunBatch(ctx, b, ids, func(ctx context.Context, id string) (T, error) {
		return canceler.Cancel(ctx, id, opts...)
	})
}
