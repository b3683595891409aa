package testit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Response is the outcome of one API call.
//
// The body is decoded as JSON when it parses; otherwise only the raw bytes
// are available (attachments, exports, empty bodies). A 4xx/5xx status is
// not turned into an error by the client: callers inspect IsError or Err.
type Response struct {
	StatusCode int
	Header     http.Header
	Raw        []byte

	value   any
	decoded bool
}

func newResponse(status int, header http.Header, body []byte) *Response {
	resp := &Response{
		StatusCode: status,
		Header:     header,
		Raw:        body,
	}

	var v any
	if json.Valid(body) && json.Unmarshal(body, &v) == nil {
		resp.value = v
		resp.decoded = true
	}

	return resp
}

// IsJSON reports whether the body was valid JSON.
func (r *Response) IsJSON() bool {
	return r.decoded
}

// Value returns the decoded JSON body (map[string]any, []any, float64,
// string, bool or nil), or the raw bytes when the body was not JSON.
func (r *Response) Value() any {
	if r.decoded {
		return r.value
	}
	return r.Raw
}

// Items returns the decoded body as a list of JSON values. A single object
// is returned as a one element list.
func (r *Response) Items() ([]any, error) {
	if !r.decoded {
		return nil, fmt.Errorf("response body is not JSON (%d bytes)", len(r.Raw))
	}
	switch v := r.value.(type) {
	case []any:
		return v, nil
	case map[string]any:
		return []any{v}, nil
	default:
		return nil, fmt.Errorf("response body is a JSON %T, not a list", v)
	}
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// IsError reports a 4xx or 5xx status.
func (r *Response) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// Err returns an *APIError for 4xx/5xx responses and nil otherwise.
func (r *Response) Err() error {
	if !r.IsError() {
		return nil
	}
	return &APIError{
		StatusCode: r.StatusCode,
		Message:    r.errorMessage(),
		Body:       string(r.Raw),
	}
}

// errorMessage picks the most useful message from a problem-details body.
func (r *Response) errorMessage() string {
	if obj, ok := r.value.(map[string]any); ok {
		for _, key := range []string{"title", "message", "error", "detail"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if text := strings.TrimSpace(string(r.Raw)); text != "" && len(text) <= 200 && !r.decoded {
		return text
	}
	return http.StatusText(r.StatusCode)
}
