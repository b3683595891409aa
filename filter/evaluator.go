package filter

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates large lists in chunks on a bounded number
// of goroutines. Small lists are evaluated inline.
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Apply returns the items matched by filter, keeping their order
func (e *ConcurrentEvaluator) Apply(ctx context.Context, filter CompiledFilter, items []any) ([]any, error) {
	if len(items) == 0 {
		return []any{}, nil
	}

	if len(items) < e.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return evaluateChunk(filter, items), nil
	}

	return e.applyConcurrent(ctx, filter, items)
}

func (e *ConcurrentEvaluator) applyConcurrent(ctx context.Context, filter CompiledFilter, items []any) ([]any, error) {
	chunkSize := max(len(items)/e.workerCount, e.batchSize)
	chunks := slices.Collect(slices.Chunk(items, chunkSize))
	results := make([][]any, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = evaluateChunk(filter, chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(results...), nil
}

func evaluateChunk(filter Filter, items []any) []any {
	matches := make([]any, 0, len(items)/4)
	for _, item := range items {
		if filter.Evaluate(item) {
			matches = append(matches, item)
		}
	}
	return matches
}
