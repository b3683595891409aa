package testit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SingleBody is a request payload that encodes to one JSON object.
// Create and update endpoints for a single entity take a SingleBody.
type SingleBody struct {
	raw json.RawMessage
}

// BulkBody is a request payload that encodes to a JSON array.
// Bulk endpoints take a BulkBody. Entries are not required to share a shape.
type BulkBody struct {
	raw json.RawMessage
}

// NewSingleBody encodes v and checks that it is a JSON object.
func NewSingleBody(v any) (SingleBody, error) {
	raw, err := encodeBody(v, '{')
	if err != nil {
		return SingleBody{}, fmt.Errorf("%w: request body should be a JSON object: %v", ErrInvalidBody, err)
	}
	return SingleBody{raw: raw}, nil
}

// NewBulkBody encodes v and checks that it is a JSON array.
func NewBulkBody(v any) (BulkBody, error) {
	raw, err := encodeBody(v, '[')
	if err != nil {
		return BulkBody{}, fmt.Errorf("%w: request body should be a JSON array: %v", ErrInvalidBody, err)
	}
	return BulkBody{raw: raw}, nil
}

// MarshalJSON returns the encoded object.
func (b SingleBody) MarshalJSON() ([]byte, error) {
	if b.raw == nil {
		return nil, ErrInvalidBody
	}
	return b.raw, nil
}

// MarshalJSON returns the encoded array.
func (b BulkBody) MarshalJSON() ([]byte, error) {
	if b.raw == nil {
		return nil, ErrInvalidBody
	}
	return b.raw, nil
}

func encodeBody(v any, open byte) (json.RawMessage, error) {
	if raw, ok := v.(json.RawMessage); ok {
		v = []byte(raw)
	}
	var raw []byte
	if b, ok := v.([]byte); ok {
		if !json.Valid(b) {
			return nil, fmt.Errorf("not valid JSON")
		}
		raw = b
	} else {
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != open {
		return nil, fmt.Errorf("got %s", describeJSON(trimmed))
	}
	return json.RawMessage(trimmed), nil
}

func describeJSON(raw []byte) string {
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '{':
		return "an object"
	case '[':
		return "an array"
	case '"':
		return "a string"
	case 'n':
		return "null"
	case 't', 'f':
		return "a boolean"
	default:
		return "a number"
	}
}

// openFile opens upload paths; replaced in tests to observe the handle.
var openFile = os.Open

// File is an upload payload: either a path on disk or an already open reader.
type File struct {
	path   string
	name   string
	reader io.Reader
}

// FilePath uploads the file at path. The file is opened right before the
// request and closed when it completes.
func FilePath(path string) File {
	return File{path: path, name: filepath.Base(path)}
}

// FileReader uploads the content of r under the given file name.
// The caller keeps ownership of r.
func FileReader(name string, r io.Reader) File {
	return File{name: name, reader: r}
}

// Name returns the file name sent in the multipart part.
func (f File) Name() string {
	return f.name
}

// check validates the payload without opening it.
func (f File) check() error {
	if f.path != "" {
		info, err := os.Stat(f.path)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrFileNotFound, f.path)
		}
		return nil
	}
	if f.reader == nil {
		return ErrInvalidFile
	}
	return nil
}

// open returns the payload reader and a release func that must always be called.
func (f File) open() (io.Reader, func(), error) {
	if err := f.check(); err != nil {
		return nil, func() {}, err
	}
	if f.path == "" {
		return f.reader, func() {}, nil
	}
	fh, err := openFile(f.path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	return fh, func() { _ = fh.Close() }, nil
}
