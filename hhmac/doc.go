// Package hhmac implements the HHMAC request authentication scheme used by
// the publishing API.
//
// A request is authenticated by signing its canonical form: the ASCII bytes
// of the method, "https://", the host, the request path (including the
// query string), a UTC timestamp and, when a body is present, the body
// content type, followed by the raw body bytes. The message is signed with
// HMAC-SHA256 keyed by the base64-decoded API secret, and the result is
// carried in the Authorization header:
//
//	Authorization: HHMAC; key="<api id>"; signature="<base64 digest>"; date="2019-01-01T00:00:00Z"
//
// # Signing Requests
//
// Use SignRequest to add the Authorization header to an HTTP request:
//
//	signer, err := hhmac.NewSigner("api-id", "c2VjcmV0...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = hhmac.SignRequest(req, hhmac.SignConfig{Signer: signer})
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs every outgoing
// request. Pass an *http.Transport to configure proxy, TLS, and timeout
// settings, or nil for a clone of http.DefaultTransport:
//
//	client := &http.Client{
//	    Transport: hhmac.NewTransport(nil, hhmac.SignConfig{Signer: signer}),
//	}
//
// # Verifying Requests
//
// VerifyRequest and Middleware check the Authorization header on the
// receiving side. They are mainly used by test servers that stand in for
// the remote API:
//
//	mw, err := hhmac.Middleware(hhmac.MiddlewareConfig{
//	    Verify: hhmac.VerifyConfig{Resolver: resolver},
//	})
package hhmac
