package hhmac

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"time"
)

// SignConfig configures HHMAC request signing.
type SignConfig struct {
	// Signer produces signatures. Required.
	Signer *Signer

	// Now returns the signing instant. When nil, time.Now is used.
	Now func() time.Time
}

func (cfg SignConfig) now() time.Time {
	if cfg.Now != nil {
		return cfg.Now()
	}

	return time.Now()
}

// SignRequest signs r in place by setting the Authorization header. It also
// sets Accept to application/json when the caller did not set it.
//
// The signing instant is captured once, so the date inside the signed
// message and the date field of the header always agree. The body, if
// any, is read in full and replaced so it can be sent afterwards.
func SignRequest(r *http.Request, cfg SignConfig) error {
	if cfg.Signer == nil {
		return ErrNoSigner
	}

	canonical, err := canonicalFromRequest(r, FormatDate(cfg.now()))
	if err != nil {
		return err
	}

	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", "application/json")
	}

	r.Header.Set("Authorization", cfg.Signer.Authorization(canonical))

	return nil
}

// canonicalFromRequest collects the signed components of r.
func canonicalFromRequest(r *http.Request, date string) (CanonicalRequest, error) {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return CanonicalRequest{}, err
	}

	return CanonicalRequest{
		Method:      r.Method,
		Host:        requestHost(r),
		Path:        r.URL.RequestURI(),
		Date:        date,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// requestHost returns the host the request is addressed to, without port.
// Outgoing requests carry it in the URL; incoming ones in r.Host.
func requestHost(r *http.Request) string {
	host := r.Host
	if r.URL != nil && r.URL.Host != "" {
		host = r.URL.Host
	}

	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}

	return host
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again. It returns nil when the
// request has no body.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	return body, nil
}
