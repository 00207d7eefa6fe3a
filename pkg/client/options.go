package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-msgform/pkg/contract"
)

// DefaultTimeout bounds each request when no other timeout is configured.
const DefaultTimeout = 15 * time.Second

// DefaultBaseURL is the development address of the reference backend.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Observer receives one call per completed backend exchange. Status is zero
// when no response arrived.
type Observer interface {
	ObserveRequest(operation string, status int, elapsed time.Duration)
}

type Option func(*Client)

// WithHTTPClient injects the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero disables the client-side bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithOperations resolves endpoints from a parsed contract instead of the
// built-in defaults.
func WithOperations(ops contract.Operations) Option {
	return func(c *Client) {
		if len(ops) > 0 {
			c.ops = ops
		}
	}
}

// WithResponseValidator rejects responses that do not match the contract.
func WithResponseValidator(v contract.Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers a request observer, typically metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}
