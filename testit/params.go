package testit

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Params holds optional query arguments for list and lookup endpoints.
// Names are case-sensitive and must match the endpoint's accepted names.
//
// Values are formatted as follows: bool as true/false, time.Time as
// RFC 3339, slices as one repeated parameter per element, pointers as
// their target, nil and nil pointers skipped, everything else with fmt.Sprint.
type Params map[string]any

// Common paging and search parameters accepted by most list endpoints.
var paging = []string{"Skip", "Take", "OrderBy", "SearchField", "SearchValue"}

// withPaging appends the paging parameters to an allow-list.
func withPaging(names ...string) []string {
	return append(slices.Clip(names), paging...)
}

// encodeQuery renders the allow-listed subset of params in allow-list order.
// Unknown names are dropped, or rejected when strict parameters are enabled.
func (c *Client) encodeQuery(op string, allowed []string, params Params) (string, error) {
	for _, name := range slices.Sorted(maps.Keys(params)) {
		if slices.Contains(allowed, name) {
			continue
		}
		if c.opts.strictParams {
			return "", &ParamError{Operation: op, Name: name, Err: ErrUnknownParameter}
		}
		c.logger.Debug().
			Str("operation", op).
			Str("param", name).
			Msg("Dropping query parameter not accepted by endpoint")
	}

	var b strings.Builder
	for _, name := range allowed {
		value, ok := params[name]
		if !ok || value == nil {
			continue
		}
		for _, s := range formatValues(value) {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(name))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(s))
		}
	}

	return b.String(), nil
}

// formatValues turns one parameter value into its query string forms.
// Nil pointers yield nothing; other pointers are followed.
func formatValues(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []byte:
		return []string{string(v)}
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, formatValues(rv.Index(i).Interface())...)
		}
		return out
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	}

	return []string{formatValue(rv.Interface())}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
