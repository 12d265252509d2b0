package newsapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the base transport requests are sent through after
// signing. Use it for proxy and connection settings. The transport is
// cloned, so Config.InsecureSkipVerify never mutates the caller's value.
func WithTransport(base *http.Transport) Option {
	return func(c *Client) {
		c.base = base
	}
}

// WithLogger sets the logger used for request tracing. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records request metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClock sets the clock used for request dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
