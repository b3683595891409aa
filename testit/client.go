package testit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client represents a TestIT API client.
//
// A Client is safe for concurrent use: its configuration is fixed at
// construction and the underlying resty/net/http client is goroutine-safe.
type Client struct {
	baseURL string
	token   string
	http    *resty.Client
	logger  zerolog.Logger
	opts    clientOptions
}

// Request describes one call to the API.
type Request struct {
	Method string
	Path   string
	// Query is an already encoded query string, without the leading '?'.
	Query string
	// Body is encoded as JSON for POST, PUT and DELETE. nil encodes as null.
	Body any
	// File switches a POST to a multipart upload. It cannot be combined with Body.
	File *File
}

// NewClient creates a new TestIT client for the instance at baseURL
// (e.g. "https://testit.example.com") authenticating with the API secret key.
func NewClient(baseURL, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: testit URL is required", ErrInvalidConfig)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: testit API token is required", ErrInvalidConfig)
	}

	// Only one trailing slash is removed
	baseURL = strings.TrimSuffix(baseURL, "/")

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	} else {
		rc = resty.New().SetTimeout(o.timeout)
	}
	if o.transport != nil {
		rc.SetTransport(o.transport)
	}
	rc.SetLogger(restyLogger{logger: logger})
	rc.SetHeader("User-Agent", o.userAgent)

	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    rc,
		logger:  logger,
		opts:    o,
	}, nil
}

// BaseURL returns the configured base URL without its trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send performs one HTTP request and returns the server's answer whatever
// its status code. Errors are only returned for invalid requests (checked
// before anything is sent) and transport failures.
func (c *Client) Send(ctx context.Context, r Request) (*Response, error) {
	method := strings.ToUpper(r.Method)

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "PrivateToken "+c.token)

	switch method {
	case http.MethodGet:
		if r.Body != nil || r.File != nil {
			return nil, fmt.Errorf("%w: GET does not carry a body", ErrUnsupportedMethod)
		}
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		if r.File != nil {
			if method != http.MethodPost {
				return nil, fmt.Errorf("%w: file uploads require POST, got %s", ErrUnsupportedMethod, method)
			}
			if r.Body != nil {
				return nil, fmt.Errorf("%w: a request carries either a JSON body or a file", ErrInvalidBody)
			}
			reader, release, err := r.File.open()
			defer release()
			if err != nil {
				return nil, err
			}
			req.SetFileReader("file", r.File.Name(), reader)
			break
		}
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, r.Method)
	}

	target := c.baseURL + r.Path
	if r.Query != "" {
		target += "?" + r.Query
	}

	start := time.Now()
	resp, err := req.Execute(method, target)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", r.Path).
		Str("query", r.Query).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("TestIT API request")

	return newResponse(resp.StatusCode(), resp.Header(), resp.Body()), nil
}

// TestConnection tests the connection to TestIT and the API token
func (c *Client) TestConnection(ctx context.Context) error {
	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: "/api/v2/projects", Query: "Take=1"})
	if err != nil {
		return err
	}
	return resp.Err()
}

// get issues a GET with the allow-listed subset of params.
func (c *Client) get(ctx context.Context, op, path string, allowed []string, params Params) (*Response, error) {
	query, err := c.encodeQuery(op, allowed, params)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// do issues a JSON bodied request (POST, PUT or DELETE) without query parameters.
func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	return c.Send(ctx, Request{Method: method, Path: path, Body: body})
}

// single sends a SingleBody, rejecting the zero value before any network call.
func (c *Client) single(ctx context.Context, op, method, path, query string, body SingleBody) (*Response, error) {
	if body.raw == nil {
		return nil, fmt.Errorf("%s: %w: empty body", op, ErrInvalidBody)
	}
	return c.Send(ctx, Request{Method: method, Path: path, Query: query, Body: body})
}

// bulk sends a BulkBody, rejecting the zero value before any network call.
func (c *Client) bulk(ctx context.Context, op, method, path string, body BulkBody) (*Response, error) {
	if body.raw == nil {
		return nil, fmt.Errorf("%s: %w: empty body", op, ErrInvalidBody)
	}
	return c.Send(ctx, Request{Method: method, Path: path, Body: body})
}

// upload posts a file as multipart with the allow-listed subset of params.
func (c *Client) upload(ctx context.Context, op, path string, file File, allowed []string, params Params) (*Response, error) {
	if err := file.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	query, err := c.encodeQuery(op, allowed, params)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, Request{Method: http.MethodPost, Path: path, Query: query, File: &file})
}

// pathf formats an API path, escaping every identifier.
func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

// restyLogger routes resty's internal messages through zerolog.
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), v...)
}
