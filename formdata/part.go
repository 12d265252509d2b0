package formdata

// Kind distinguishes JSON parts from binary parts.
type Kind int

const (
	// KindJSON parts carry JSON text with a fixed application/json type.
	KindJSON Kind = iota

	// KindFile parts carry the bytes of a local file; their content type
	// is detected from the bytes.
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Part is one unit of a multipart body.
type Part struct {
	Kind Kind

	// Name is the form field name.
	Name string

	// Filename is optional; when set it is emitted as the filename
	// attribute of the Content-Disposition line.
	Filename string

	// Data holds the JSON text of a KindJSON part.
	Data []byte

	// Path is the local file read for a KindFile part.
	Path string
}

// JSONPart returns a JSON part. filename may be empty.
func JSONPart(name, filename string, data []byte) Part {
	return Part{Kind: KindJSON, Name: name, Filename: filename, Data: data}
}

// FilePart returns a binary part whose bytes are read from path at encode
// time.
func FilePart(name, filename, path string) Part {
	return Part{Kind: KindFile, Name: name, Filename: filename, Path: path}
}

// PartInfo describes an encoded part.
type PartInfo struct {
	Name        string
	Filename    string
	ContentType string
	Size        int
}
