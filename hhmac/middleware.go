package hhmac

import (
	"context"
	"net/http"
)

// MiddlewareConfig configures Middleware.
type MiddlewareConfig struct {
	Verify VerifyConfig

	// OnError writes the response for a request that failed verification.
	// The default answers 401 with a WWW-Authenticate challenge.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

type credentialKey struct{}

// CredentialFromContext returns the verified credential Middleware stored
// for the request.
func CredentialFromContext(ctx context.Context) (Credential, bool) {
	cred, ok := ctx.Value(credentialKey{}).(Credential)
	return cred, ok
}

// Middleware authenticates requests by their HHMAC signature. Requests
// that pass reach next with their credential in the context; see
// CredentialFromContext.
func Middleware(cfg MiddlewareConfig) (func(http.Handler) http.Handler, error) {
	if cfg.Verify.Resolver == nil {
		return nil, ErrNoResolver
	}

	reject := cfg.OnError
	if reject == nil {
		reject = challenge
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred, err := verifyRequest(r, cfg.Verify)
			if err != nil {
				reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), credentialKey{}, cred)))
		})
	}, nil
}

func challenge(w http.ResponseWriter, _ *http.Request, _ error) {
	w.Header().Set("WWW-Authenticate", Scheme)
	w.WriteHeader(http.StatusUnauthorized)
}
