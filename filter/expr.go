package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler.
//
// Expressions see every top-level field of the item by name (name,
// projectId, isFlaky, ...), the whole item as Item, and the helpers:
//
//	containsFold(s, sub)  hasPrefixFold(s, p)  hasSuffixFold(s, p)  lower(s)  upper(s)
//	field("a.b.c")    hasLabel(name)    hasTag(name)
//	date(s)           daysSince(v)      daysAgo(n)      parseDate("2006-01-02")  now()
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: staticHelpers(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	compileEnv := maps.Clone(c.helperFuncs)
	maps.Copy(compileEnv, itemHelperSignatures)

	program, err := expr.Compile(expression,
		expr.Env(compileEnv),
		expr.AllowUndefinedVariables(), // item fields are only known at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether item matches. Evaluation errors count as no match.
func (f *exprFilter) Evaluate(item any) bool {
	ok, err := f.Matches(item)
	return err == nil && ok
}

// Matches evaluates the filter against a decoded JSON value
func (f *exprFilter) Matches(item any) (bool, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return false, nil
	}

	result, err := expr.Run(f.program, f.environment(obj))
	if err != nil {
		id, _ := obj["id"].(string)
		return false, &EvaluationError{
			Expression: f.expression,
			ItemID:     id,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// AsBool at compile time guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// environment exposes the item's fields, then the helpers, so a field
// can never shadow a helper
func (f *exprFilter) environment(item map[string]any) map[string]any {
	env := make(map[string]any, len(item)+len(f.helpers)+len(itemHelperSignatures)+1)
	maps.Copy(env, item)
	maps.Copy(env, f.helpers)

	env["Item"] = item
	env["field"] = fieldFunc(item)
	env["hasLabel"] = namedEntryFunc(item, "labels")
	env["hasTag"] = namedEntryFunc(item, "tags")

	return env
}

// itemHelperSignatures give the compiler the types of per-item helpers
var itemHelperSignatures = map[string]any{
	"field":    func(string) any { return nil },
	"hasLabel": func(string) bool { return false },
	"hasTag":   func(string) bool { return false },
}

// staticHelpers creates the helper functions that do not depend on the item
func staticHelpers() map[string]any {
	return map[string]any{
		"containsFold": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefixFold": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffixFold": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"date":  toTime,
		"daysSince": func(v any) int {
			t := toTime(v)
			if t.IsZero() {
				return -1
			}
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"parseDate": func(s string) time.Time {
			t, _ := time.Parse("2006-01-02", s)
			return t
		},
		"now": time.Now,
	}
}

// toTime accepts the timestamp formats TestIT returns. Unparseable values
// give the zero time.
func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// fieldFunc resolves a dotted path through nested objects, returning nil
// for a missing segment
func fieldFunc(item map[string]any) func(string) any {
	return func(path string) any {
		var cur any = item
		for _, key := range strings.Split(path, ".") {
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = obj[key]
		}
		return cur
	}
}

// namedEntryFunc checks a list of {"name": ...} objects (labels, tags)
// case-insensitively
func namedEntryFunc(item map[string]any, key string) func(string) bool {
	entries, _ := item[key].([]any)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		switch v := e.(type) {
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				names = append(names, strings.ToLower(name))
			}
		case string:
			names = append(names, strings.ToLower(v))
		}
	}
	return func(name string) bool {
		return slices.Contains(names, strings.ToLower(name))
	}
}
