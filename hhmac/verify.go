package hhmac

import (
	"fmt"
	"net/http"
	"time"
)

// KeyResolver returns the Signer holding the secret for keyID. It is
// called during request verification to look up the appropriate key.
type KeyResolver func(r *http.Request, keyID string) (*Signer, error)

// StaticResolver returns a KeyResolver that knows exactly one signer.
func StaticResolver(signer *Signer) KeyResolver {
	return func(_ *http.Request, keyID string) (*Signer, error) {
		if keyID != signer.KeyID() {
			return nil, fmt.Errorf("%w: unknown key %q", ErrSignatureInvalid, keyID)
		}

		return signer, nil
	}
}

// VerifyConfig configures HHMAC request verification.
type VerifyConfig struct {
	// Resolver looks up a Signer for a given key ID. Required.
	Resolver KeyResolver

	// MaxSkew is the maximum accepted distance between the signed date
	// and the verifier's clock. Zero disables the check.
	MaxSkew time.Duration

	// Now returns the verifier's clock. When nil, time.Now is used.
	Now func() time.Time
}

// VerifyRequest verifies the HHMAC Authorization header of r. The body is
// read and restored, so handlers can still consume it.
func VerifyRequest(r *http.Request, cfg VerifyConfig) error {
	_, err := verifyRequest(r, cfg)
	return err
}

// verifyRequest returns the credential of r once its signature checks out.
func verifyRequest(r *http.Request, cfg VerifyConfig) (Credential, error) {
	if cfg.Resolver == nil {
		return Credential{}, ErrNoResolver
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return Credential{}, ErrMissingAuthorization
	}

	cred, err := ParseCredential(header)
	if err != nil {
		return Credential{}, err
	}

	signedAt, err := ParseDate(cred.Date)
	if err != nil {
		return Credential{}, err
	}

	if cfg.MaxSkew > 0 {
		now := time.Now()
		if cfg.Now != nil {
			now = cfg.Now()
		}

		if skew := now.Sub(signedAt).Abs(); skew > cfg.MaxSkew {
			return Credential{}, fmt.Errorf("%w: %s", ErrClockSkew, skew)
		}
	}

	signer, err := cfg.Resolver(r, cred.KeyID)
	if err != nil {
		return Credential{}, err
	}

	canonical, err := canonicalFromRequest(r, cred.Date)
	if err != nil {
		return Credential{}, err
	}

	if err := signer.Verify(canonical, cred.Signature); err != nil {
		return Credential{}, err
	}

	return cred, nil
}
