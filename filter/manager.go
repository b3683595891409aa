package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager keeps named filter presets and applies them to API results
type Manager struct {
	compiler  Compiler
	evaluator Evaluator
	filters   map[string]CompiledFilter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator Evaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler:  NewExprCompiler(WithCache(100)),
		evaluator: NewConcurrentEvaluator(),
		filters:   make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Compile compiles an ad-hoc expression with the manager's compiler
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

// RegisterFilter registers a new preset or replaces an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers several presets; none are registered if any fails
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	for _, name := range slices.Sorted(maps.Keys(filters)) {
		filter, err := m.compiler.Compile(filters[name])
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a preset by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns the preset names in sorted order
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve picks the filter for a command: a preset, an expression, or
// both joined with "and". It returns nil when neither is given.
func (m *Manager) Resolve(preset, expression string) (CompiledFilter, error) {
	var presetExpr string
	if preset != "" {
		filter, ok := m.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("preset '%s': %w", preset, ErrFilterNotFound)
		}
		if expression == "" {
			return filter, nil
		}
		presetExpr = filter.Expression()
	}

	switch {
	case expression == "":
		return nil, nil
	case presetExpr != "":
		return m.compiler.Compile(fmt.Sprintf("(%s) and (%s)", presetExpr, expression))
	default:
		return m.compiler.Compile(expression)
	}
}

// Apply evaluates filter against items. A nil filter returns items unchanged.
func (m *Manager) Apply(ctx context.Context, filter CompiledFilter, items []any) ([]any, error) {
	if filter == nil {
		return items, nil
	}
	return m.evaluator.Apply(ctx, filter, items)
}

// ApplyPreset evaluates a registered preset against items
func (m *Manager) ApplyPreset(ctx context.Context, name string, items []any) ([]any, error) {
	filter, exists := m.GetFilter(name)
	if !exists {
		return nil, fmt.Errorf("filter '%s': %w", name, ErrFilterNotFound)
	}

	return m.evaluator.Apply(ctx, filter, items)
}
