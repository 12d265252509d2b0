package formdata

import (
	"errors"
	"fmt"
)

// Validation errors. They are returned before any file is read.
var (
	// ErrReservedName is returned when a binary part uses a name reserved
	// for the article or metadata JSON parts.
	ErrReservedName = errors.New("formdata: reserved part name")

	// ErrMissingPart is returned when a bundle lacks its article or
	// metadata JSON.
	ErrMissingPart = errors.New("formdata: required part missing")

	// ErrInvalidJSON is returned when a JSON part does not hold valid JSON.
	ErrInvalidJSON = errors.New("formdata: invalid json part")

	// ErrInvalidPart is returned when a part has no name or no source.
	ErrInvalidPart = errors.New("formdata: invalid part")
)

// Encoding errors.
var (
	// ErrFileAccess is returned when a bundled file cannot be found or read.
	ErrFileAccess = errors.New("formdata: file not found")

	// ErrUndetectableContentType is returned when the content type of a
	// binary payload cannot be determined from its bytes.
	ErrUndetectableContentType = errors.New("formdata: undetectable content type")
)

// FileError reports a bundled file that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrFileAccess, e.Path, e.Err)
}

// Unwrap returns both the category and the underlying cause, so that
// errors.Is matches ErrFileAccess as well as fs.ErrNotExist.
func (e *FileError) Unwrap() []error {
	return []error{ErrFileAccess, e.Err}
}

// PartError reports a part whose content could not be classified.
type PartError struct {
	Name string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("formdata: part %q: %v", e.Name, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}
