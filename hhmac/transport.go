package hhmac

import (
	"fmt"
	"net/http"
)

// Transport signs every outgoing request before handing it to its base
// RoundTripper. The caller's request is never modified.
type Transport struct {
	base   http.RoundTripper
	config SignConfig
}

// NewTransport wraps base, or a private clone of http.DefaultTransport
// when base is nil, so that proxy and TLS settings stay with the caller:
//
//	base := &http.Transport{
//	    TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
//	}
//	client := &http.Client{Transport: hhmac.NewTransport(base, hhmac.SignConfig{Signer: signer})}
func NewTransport(base *http.Transport, cfg SignConfig) *Transport {
	t := &Transport{config: cfg}

	if base == nil {
		t.base = http.DefaultTransport.(*http.Transport).Clone()
	} else {
		t.base = base
	}

	return t
}

// RoundTrip implements http.RoundTripper. A request with GetBody is
// signed over a fresh copy of its body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	signed := req.Clone(req.Context())

	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("hhmac: copy body: %w", err)
		}

		signed.Body = body
	}

	if err := SignRequest(signed, t.config); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(signed)
}

// CloseIdleConnections closes idle connections of the base transport.
func (t *Transport) CloseIdleConnections() {
	if ci, ok := t.base.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}
