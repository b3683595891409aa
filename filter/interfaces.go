package filter

import (
	"context"
)

// Filter decides whether a decoded TestIT entity matches
type Filter interface {
	// Evaluate checks if an item matches the filter criteria.
	// Items that are not JSON objects never match.
	Evaluate(item any) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Matches is Evaluate with the evaluation error reported
	Matches(item any) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator applies a filter to a list of items
type Evaluator interface {
	// Apply returns the matching items in their original order
	Apply(ctx context.Context, filter CompiledFilter, items []any) ([]any, error)
}
