package newsapi

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/vitalvas/newsapi/hhmac"
)

// Client talks to the publishing API. It holds only immutable
// configuration and is safe for concurrent use; each call performs at
// most one signed request.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client

	base    *http.Transport
	logger  zerolog.Logger
	metrics *Metrics
	now     func() time.Time
}

// New creates a Client. The API secret is decoded here: a secret that is
// not valid base64 fails with hhmac.ErrInvalidSecret instead of failing
// every request later.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	signer, err := hhmac.NewSigner(cfg.APIID, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("newsapi: configure signer: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = "https://" + hostPort(cfg.Host, cfg.Port)
	c.http = &http.Client{
		Timeout: cfg.Timeout,
		Transport: hhmac.NewTransport(c.baseTransport(), hhmac.SignConfig{
			Signer: signer,
			Now:    c.now,
		}),
	}

	return c, nil
}

// Host returns the API host requests are signed for.
func (c *Client) Host() string {
	return c.cfg.Host
}

// CloseIdleConnections closes connections kept alive from earlier
// requests.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func (c *Client) baseTransport() *http.Transport {
	var base *http.Transport
	if c.base != nil {
		base = c.base.Clone()
	} else {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}

	if c.cfg.InsecureSkipVerify {
		if base.TLSClientConfig == nil {
			base.TLSClientConfig = &tls.Config{}
		}

		base.TLSClientConfig.InsecureSkipVerify = true
	}

	return base
}

func hostPort(host string, port int) string {
	if port == 0 {
		return host
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}
