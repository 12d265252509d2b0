package newsapi

import "time"

// DefaultHost is the production API host.
const DefaultHost = "news-api.apple.com"

// DefaultTimeout bounds a whole request, including reading the response.
const DefaultTimeout = 30 * time.Second

// Config holds the connection settings of a Client.
type Config struct {
	// APIID is the API key identifier. Required.
	APIID string

	// APISecret is the base64-encoded API secret. Required.
	APISecret string

	// Host is the API host without scheme or port. Defaults to
	// DefaultHost.
	Host string

	// Port overrides the HTTPS port. Zero means the default port. The
	// port is never part of the signed host.
	Port int

	// InsecureSkipVerify disables TLS certificate verification. Only for
	// test servers with self-signed certificates.
	InsecureSkipVerify bool

	// Timeout bounds each request. Defaults to DefaultTimeout; a negative
	// value disables the client-side timeout.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.Timeout < 0 {
		c.Timeout = 0
	}

	return c
}

func (c Config) validate() error {
	if c.APIID == "" {
		return validationError("api id is required")
	}

	if c.APISecret == "" {
		return validationError("api secret is required")
	}

	if c.Port < 0 || c.Port > 65535 {
		return validationError("port %d out of range", c.Port)
	}

	return nil
}
