package hhmac

import (
	"fmt"
	"strings"
)

// Scheme is the authorization scheme name.
const Scheme = "HHMAC"

// Credential is the parsed form of an HHMAC Authorization header.
type Credential struct {
	KeyID     string
	Signature string
	Date      string
}

// String renders the header value. Field order and quoting are fixed by
// the server:
//
//	HHMAC; key="<id>"; signature="<sig>"; date="<date>"
func (c Credential) String() string {
	return Scheme + `; key="` + c.KeyID + `"; signature="` + c.Signature + `"; date="` + c.Date + `"`
}

// ParseCredential parses an Authorization header value produced by
// Credential.String. Parameters may appear in any order, but all three
// must be present.
func ParseCredential(header string) (Credential, error) {
	scheme, rest, ok := strings.Cut(header, ";")
	if !ok || strings.TrimSpace(scheme) != Scheme {
		return Credential{}, fmt.Errorf("%w: scheme must be %s", ErrMalformedHeader, Scheme)
	}

	var cred Credential

	for param := range strings.SplitSeq(rest, ";") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}

		name, value, ok := strings.Cut(param, "=")
		if !ok {
			return Credential{}, fmt.Errorf("%w: parameter %q has no value", ErrMalformedHeader, param)
		}

		value, err := unquote(value)
		if err != nil {
			return Credential{}, err
		}

		switch strings.TrimSpace(name) {
		case "key":
			cred.KeyID = value
		case "signature":
			cred.Signature = value
		case "date":
			cred.Date = value
		}
	}

	if cred.KeyID == "" || cred.Signature == "" || cred.Date == "" {
		return Credential{}, fmt.Errorf("%w: key, signature and date are required", ErrMalformedHeader)
	}

	return cred, nil
}

func unquote(value string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", fmt.Errorf("%w: value %q must be quoted", ErrMalformedHeader, value)
	}

	return value[1 : len(value)-1], nil
}
