package formdata

import (
	"mime"
	"net/http"
	"slices"
	"strings"
)

// ContentTypeJSON is the content type of JSON parts.
const ContentTypeJSON = "application/json"

// ContentTypeOctetStream is used for binary content whose detected type is
// not accepted by the API.
const ContentTypeOctetStream = "application/octet-stream"

// allowedContentTypes are the binary content types the API accepts.
var allowedContentTypes = []string{
	ContentTypeOctetStream,
	"image/jpeg",
	"image/png",
	"image/gif",
}

// AllowedContentTypes returns the content types accepted for binary parts.
func AllowedContentTypes() []string {
	return slices.Clone(allowedContentTypes)
}

// DetectContentType classifies data by its leading bytes, ignoring any
// file name or declared type. Detected types outside AllowedContentTypes
// are replaced by application/octet-stream.
//
// Empty data, data whose magic bytes are not recognised at all, and data
// the sniffer can only classify heuristically as text yield
// ErrUndetectableContentType.
func DetectContentType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrUndetectableContentType
	}

	// The sniffer falls back to application/octet-stream when no
	// signature matches.
	sniffed := http.DetectContentType(data)
	if sniffed == ContentTypeOctetStream {
		return "", ErrUndetectableContentType
	}

	mediaType, _, err := mime.ParseMediaType(sniffed)
	if err != nil {
		mediaType = sniffed
	}
	if strings.HasPrefix(mediaType, "text/") {
		return "", ErrUndetectableContentType
	}

	if !slices.Contains(allowedContentTypes, mediaType) {
		return ContentTypeOctetStream, nil
	}

	return mediaType, nil
}
