package hhmac

// canonicalScheme is always part of the signed message, whatever scheme
// the request is actually sent over.
const canonicalScheme = "https://"

// CanonicalRequest holds the parts of an outbound request that are covered
// by the signature. It exists only for the duration of one sign operation.
type CanonicalRequest struct {
	// Method is the HTTP method, e.g. "POST".
	Method string

	// Host is the API host without scheme or port.
	Host string

	// Path is the request URI: path plus the raw query string, if any.
	Path string

	// Date is the timestamp, already formatted with FormatDate.
	Date string

	// ContentType is the request content type. It is only signed when
	// Body is non-nil.
	ContentType string

	// Body is the exact request body. A nil Body means the request has no
	// body; an empty non-nil slice is a present but empty body.
	Body []byte
}

// HasBody reports whether the request carries a body.
func (c CanonicalRequest) HasBody() bool {
	return c.Body != nil
}

// BuildCanonical returns the byte sequence that is signed for c:
//
//	METHOD + "https://" + HOST + PATH + DATE + CONTENT_TYPE + BODY
//
// CONTENT_TYPE and BODY are omitted for requests without a body. The body
// is appended as raw bytes.
func BuildCanonical(c CanonicalRequest) []byte {
	size := len(c.Method) + len(canonicalScheme) + len(c.Host) + len(c.Path) + len(c.Date)
	if c.HasBody() {
		size += len(c.ContentType) + len(c.Body)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, c.Method...)
	buf = append(buf, canonicalScheme...)
	buf = append(buf, c.Host...)
	buf = append(buf, c.Path...)
	buf = append(buf, c.Date...)

	if c.HasBody() {
		buf = append(buf, c.ContentType...)
		buf = append(buf, c.Body...)
	}

	return buf
}
