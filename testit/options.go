package testit

import (
	"net/http"
	"time"
)

// DefaultTimeout is applied when no WithTimeout or WithHTTPClient option is given.
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout      time.Duration
	httpClient   *http.Client
	transport    http.RoundTripper
	userAgent    string
	strictParams bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:   DefaultTimeout,
		userAgent: "testit-go",
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient uses a caller supplied http.Client. Its timeout wins over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTransport sets the round tripper used for every request.
func WithTransport(transport http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = transport
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithStrictParams rejects query parameters an endpoint does not accept
// instead of dropping them.
func WithStrictParams() Option {
	return func(o *clientOptions) {
		o.strictParams = true
	}
}
