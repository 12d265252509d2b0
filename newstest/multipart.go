package newstest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
)

// Part is one parsed part of an upload.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Size        int
	Data        []byte
}

// rawHeaderOrder is the header layout every part must follow.
var rawHeaderOrder = []string{"Content-Type", "Content-Disposition"}

// ParseUpload parses a multipart body the way the API does: each part must
// list Content-Type before Content-Disposition, and the disposition must
// carry a size attribute equal to the payload length.
func ParseUpload(contentType string, body []byte) ([]Part, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("content type: %w", err)
	}

	if mediaType != "multipart/form-data" || params["boundary"] == "" {
		return nil, fmt.Errorf("content type %q is not multipart/form-data with a boundary", contentType)
	}

	boundary := params["boundary"]
	if !bytes.HasSuffix(body, []byte("--"+boundary+"--\r\n")) {
		return nil, errors.New("body does not end with the closing delimiter")
	}

	if err := checkHeaderOrder(body, boundary); err != nil {
		return nil, err
	}

	reader := multipart.NewReader(bytes.NewReader(body), boundary)

	var parts []Part

	for {
		p, err := reader.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(p)
		if err != nil {
			return nil, err
		}

		part, err := parseDisposition(p.Header.Get("Content-Disposition"))
		if err != nil {
			return nil, err
		}

		if part.Size != len(data) {
			return nil, fmt.Errorf("part %q declares size %d but carries %d bytes", part.Name, part.Size, len(data))
		}

		part.ContentType = p.Header.Get("Content-Type")
		part.Data = data
		parts = append(parts, part)
	}

	return parts, nil
}

// checkHeaderOrder verifies the literal header lines following each
// delimiter, which mime/multipart does not preserve.
func checkHeaderOrder(body []byte, boundary string) error {
	delim := "--" + boundary + "\r\n"

	for _, chunk := range strings.Split(string(body), delim)[1:] {
		headerBlock, _, ok := strings.Cut(chunk, "\r\n\r\n")
		if !ok {
			return errors.New("part without header terminator")
		}

		lines := strings.Split(headerBlock, "\r\n")
		if len(lines) != len(rawHeaderOrder) {
			return fmt.Errorf("part has %d header lines, want %d", len(lines), len(rawHeaderOrder))
		}

		for i, name := range rawHeaderOrder {
			if !strings.HasPrefix(lines[i], name+": ") {
				return fmt.Errorf("header line %d is %q, want %s", i, lines[i], name)
			}
		}
	}

	return nil
}

func parseDisposition(value string) (Part, error) {
	disposition, params, err := mime.ParseMediaType(value)
	if err != nil {
		return Part{}, fmt.Errorf("content disposition: %w", err)
	}

	if disposition != "form-data" {
		return Part{}, fmt.Errorf("disposition %q is not form-data", disposition)
	}

	sizeAttr, ok := params["size"]
	if !ok {
		return Part{}, errors.New("content disposition has no size")
	}

	size, err := strconv.Atoi(sizeAttr)
	if err != nil {
		return Part{}, fmt.Errorf("size: %w", err)
	}

	name, err := url.PathUnescape(params["name"])
	if err != nil {
		return Part{}, fmt.Errorf("name: %w", err)
	}

	filename, err := url.PathUnescape(params["filename"])
	if err != nil {
		return Part{}, fmt.Errorf("filename: %w", err)
	}

	return Part{Name: name, Filename: filename, Size: size}, nil
}
