package hhmac

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Signer computes HHMAC signatures for a single API identity.
// A Signer is immutable and safe for concurrent use.
type Signer struct {
	keyID string
	key   []byte
}

// NewSigner creates a Signer for the API identifier keyID and the
// base64-encoded secret. The secret is decoded once here; a secret that
// is empty or not valid base64 yields ErrInvalidSecret.
func NewSigner(keyID, secret string) (*Signer, error) {
	if keyID == "" {
		return nil, ErrInvalidKeyID
	}

	key, err := DecodeSecret(secret)
	if err != nil {
		return nil, err
	}

	return &Signer{keyID: keyID, key: key}, nil
}

// DecodeSecret decodes a base64 API secret. Both padded and unpadded
// standard encodings are accepted.
func DecodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("%w: secret is empty", ErrInvalidSecret)
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		key, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(secret, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
		}
	}

	if len(key) == 0 {
		return nil, fmt.Errorf("%w: secret decodes to zero bytes", ErrInvalidSecret)
	}

	return key, nil
}

// KeyID returns the API identifier placed in the key field of the
// Authorization header.
func (s *Signer) KeyID() string { return s.keyID }

// Sign returns the base64-encoded HMAC-SHA256 of the canonical form of c.
func (s *Signer) Sign(c CanonicalRequest) string {
	return base64.StdEncoding.EncodeToString(s.mac(BuildCanonical(c)))
}

// Authorization signs c and returns the complete Authorization header
// value.
func (s *Signer) Authorization(c CanonicalRequest) string {
	return Credential{
		KeyID:     s.keyID,
		Signature: s.Sign(c),
		Date:      c.Date,
	}.String()
}

// Verify checks signature, a base64 digest, against the canonical form of
// c. The comparison is constant time.
func (s *Signer) Verify(c CanonicalRequest, signature string) error {
	actual, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: invalid base64 in signature", ErrMalformedHeader)
	}

	if !hmac.Equal(s.mac(BuildCanonical(c)), actual) {
		return ErrSignatureInvalid
	}

	return nil
}

func (s *Signer) mac(message []byte) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write(message)

	return h.Sum(nil)
}
