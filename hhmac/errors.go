package hhmac

import "errors"

// Key material errors.
var (
	// ErrInvalidSecret is returned when the API secret is empty or is not
	// valid base64. It is a configuration fault and is reported when the
	// Signer is built, never per request.
	ErrInvalidSecret = errors.New("hhmac: invalid api secret")

	// ErrInvalidKeyID is returned when the API identifier is empty.
	ErrInvalidKeyID = errors.New("hhmac: api id must not be empty")
)

// Signing errors.
var (
	// ErrNoSigner is returned when SignConfig has no Signer configured.
	ErrNoSigner = errors.New("hhmac: signer must not be nil")
)

// Verification errors.
var (
	// ErrNoResolver is returned when VerifyConfig has no KeyResolver configured.
	ErrNoResolver = errors.New("hhmac: key resolver must not be nil")

	// ErrMissingAuthorization is returned when the request carries no
	// Authorization header.
	ErrMissingAuthorization = errors.New("hhmac: authorization header not found")

	// ErrMalformedHeader is returned when the Authorization header cannot
	// be parsed as an HHMAC credential.
	ErrMalformedHeader = errors.New("hhmac: malformed authorization header")

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("hhmac: signature verification failed")

	// ErrClockSkew is returned when the signed date is further from the
	// verifier's clock than VerifyConfig.MaxSkew allows.
	ErrClockSkew = errors.New("hhmac: signature date outside allowed skew")
)
