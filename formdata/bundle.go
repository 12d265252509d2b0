package formdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Reserved part names. They belong to the two leading JSON parts and may
// not be used by bundled files.
const (
	ArticleName  = "article.json"
	MetadataName = "metadata"
)

// File is a local file bundled with an article.
type File struct {
	// Name is the file name the article document refers to, e.g.
	// "image.png". It becomes the part's filename attribute.
	Name string

	// Path is where the file is read from.
	Path string
}

// Bundle is the logical upload: the article JSON, the metadata JSON and
// any number of bundled files, in order.
type Bundle struct {
	Article  []byte
	Metadata []byte
	Files    []File
}

// Validate checks the bundle without touching the file system.
func (b Bundle) Validate() error {
	if len(b.Article) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingPart, ArticleName)
	}

	if len(b.Metadata) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingPart, MetadataName)
	}

	if !json.Valid(b.Article) {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, ArticleName)
	}

	if !json.Valid(b.Metadata) {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, MetadataName)
	}

	for i, f := range b.Files {
		if isReserved(f.Name) {
			return fmt.Errorf("%w: bundle cannot contain %q", ErrReservedName, f.Name)
		}

		if f.Name == "" || f.Path == "" {
			return fmt.Errorf("%w: file %d needs a name and a path", ErrInvalidPart, i)
		}
	}

	return nil
}

// Parts returns the ordered parts of the bundle: article, metadata, then
// one part per file named file0, file1, and so on.
func (b Bundle) Parts() ([]Part, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	parts := make([]Part, 0, 2+len(b.Files))
	parts = append(parts,
		JSONPart(ArticleName, ArticleName, b.Article),
		JSONPart(MetadataName, "", b.Metadata),
	)

	for i, f := range b.Files {
		parts = append(parts, FilePart("file"+strconv.Itoa(i), f.Name, f.Path))
	}

	return parts, nil
}

// Encode validates the bundle and encodes it.
func (b Bundle) Encode(ctx context.Context) (*EncodedBody, error) {
	parts, err := b.Parts()
	if err != nil {
		return nil, err
	}

	return Encode(ctx, parts)
}

func isReserved(name string) bool {
	return name == ArticleName || name == MetadataName
}
