package etherpad

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	transport  Transport
	httpClient *http.Client
	caPath     *string
	resolver   *CAResolver
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:  30 * time.Second,
		resolver: DefaultCAResolver,
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

// WithTransport replaces the HTTP transport entirely. The host, port and TLS
// settings of the client are not consulted by a custom Transport.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithHTTPClient uses the given http.Client for the default transport.
// Its Transport field is left untouched, so TLS policy is the caller's.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithCAPath sets the trust-anchor directory (or PEM file) for this client,
// overriding the process-wide resolver. An empty path disables verification
// on secure endpoints.
func WithCAPath(path string) Option {
	return func(o *clientOptions) {
		o.caPath = &path
	}
}

// WithCAResolver uses r instead of DefaultCAResolver.
func WithCAResolver(r *CAResolver) Option {
	return func(o *clientOptions) {
		if r != nil {
			o.resolver = r
		}
	}
}
