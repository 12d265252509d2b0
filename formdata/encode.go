package formdata

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const crlf = "\r\n"

// EncodedBody is a complete multipart body. It is immutable: accessors
// return copies or read-only views.
type EncodedBody struct {
	boundary string
	buf      []byte
	parts    []PartInfo
}

// Boundary returns the boundary token shared by every delimiter.
func (b *EncodedBody) Boundary() string { return b.boundary }

// ContentType returns the request content type including the boundary.
func (b *EncodedBody) ContentType() string {
	return "multipart/form-data; boundary=" + b.boundary
}

// Header returns the request headers describing the body.
func (b *EncodedBody) Header() http.Header {
	h := make(http.Header, 2)
	h.Set("Content-Type", b.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(b.buf)))

	return h
}

// Len returns the body size in bytes.
func (b *EncodedBody) Len() int { return len(b.buf) }

// Bytes returns a copy of the body.
func (b *EncodedBody) Bytes() []byte { return bytes.Clone(b.buf) }

// Reader returns a new reader over the body.
func (b *EncodedBody) Reader() *bytes.Reader { return bytes.NewReader(b.buf) }

// Parts describes the encoded parts in order.
func (b *EncodedBody) Parts() []PartInfo {
	out := make([]PartInfo, len(b.parts))
	copy(out, b.parts)

	return out
}

// resolved is a part with its payload loaded and its content type known.
type resolved struct {
	part        Part
	contentType string
	data        []byte
}

// Encode reads every part and encodes them, in order, into one body with
// a fresh random boundary.
//
// All files are read and classified before any bytes are written; the
// first failure aborts the encode. ctx is checked before each file read.
func Encode(ctx context.Context, parts []Part) (*EncodedBody, error) {
	boundary, err := NewBoundary()
	if err != nil {
		return nil, fmt.Errorf("formdata: generate boundary: %w", err)
	}

	return encode(ctx, parts, boundary)
}

func encode(ctx context.Context, parts []Part, boundary string) (*EncodedBody, error) {
	if err := validateParts(parts); err != nil {
		return nil, err
	}

	items := make([]resolved, 0, len(parts))
	for _, p := range parts {
		item, err := resolve(ctx, p)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	var buf bytes.Buffer
	buf.Grow(encodedSize(items, boundary))

	infos := make([]PartInfo, 0, len(items))
	for _, item := range items {
		writePartHeader(&buf, boundary, item)
		buf.Write(item.data)
		buf.WriteString(crlf)

		infos = append(infos, PartInfo{
			Name:        item.part.Name,
			Filename:    item.part.Filename,
			ContentType: item.contentType,
			Size:        len(item.data),
		})
	}

	buf.WriteString("--" + boundary + "--" + crlf)

	return &EncodedBody{
		boundary: boundary,
		buf:      buf.Bytes(),
		parts:    infos,
	}, nil
}

// validateParts runs the checks that need no I/O.
func validateParts(parts []Part) error {
	for i, p := range parts {
		if p.Name == "" {
			return fmt.Errorf("%w: part %d has no name", ErrInvalidPart, i)
		}

		switch p.Kind {
		case KindJSON:
		case KindFile:
			if isReserved(p.Name) || isReserved(p.Filename) {
				return fmt.Errorf("%w: file part %q", ErrReservedName, p.Name)
			}

			if p.Path == "" {
				return fmt.Errorf("%w: file part %q has no path", ErrInvalidPart, p.Name)
			}
		default:
			return fmt.Errorf("%w: part %q has unknown kind %d", ErrInvalidPart, p.Name, p.Kind)
		}
	}

	return nil
}

func resolve(ctx context.Context, p Part) (resolved, error) {
	if p.Kind == KindJSON {
		return resolved{part: p, contentType: ContentTypeJSON, data: p.Data}, nil
	}

	if err := ctx.Err(); err != nil {
		return resolved{}, err
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return resolved{}, &FileError{Path: p.Path, Err: err}
	}

	contentType, err := DetectContentType(data)
	if err != nil {
		return resolved{}, &PartError{Name: p.Name, Err: err}
	}

	return resolved{part: p, contentType: contentType, data: data}, nil
}

// writePartHeader writes the delimiter line and the part headers:
//
//	--boundary
//	Content-Type: <type>
//	Content-Disposition: form-data[; filename="<f>"]; name="<n>"; size=<len>
//	<blank line>
func writePartHeader(buf *bytes.Buffer, boundary string, item resolved) {
	buf.WriteString("--" + boundary + crlf)
	buf.WriteString("Content-Type: " + item.contentType + crlf)
	buf.WriteString("Content-Disposition: form-data")

	if item.part.Filename != "" {
		buf.WriteString(`; filename="` + escapeComponent(item.part.Filename) + `"`)
	}

	buf.WriteString(`; name="` + escapeComponent(item.part.Name) + `"`)
	buf.WriteString("; size=" + strconv.Itoa(len(item.data)))
	buf.WriteString(crlf + crlf)
}

func encodedSize(items []resolved, boundary string) int {
	size := len(boundary) + 6
	for _, item := range items {
		size += 128 + len(boundary) + len(item.part.Name) + len(item.part.Filename) + len(item.data)
	}

	return size
}

// componentReplacer turns url.QueryEscape output into the
// encodeURIComponent form: spaces as %20 and !'()* left as is.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s for use inside a quoted
// Content-Disposition attribute.
func escapeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}
