// Blobs: the request and response payloads.
//
// Everything read from or written to the REST interface travels as a blob,
// whether it is dialect JSON, plain JSON, an image or other binary. A Blob
// pairs the raw bytes with their content type and bridges to the tree
// model on one side and to ordinary Go values on the other.
package infinity

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"
)

// Content types the client sends and recognizes.
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// Blob is a payload: raw bytes plus their content type.
type Blob struct {
	Data        []byte
	ContentType string
}

// NewBlob makes a blob from raw bytes.
func NewBlob(data []byte, contentType string) Blob {
	return Blob{Data: data, ContentType: contentType}
}

// NewTextBlob makes a text/plain blob.
func NewTextBlob(s string) Blob {
	return Blob{Data: []byte(s), ContentType: ContentTypeText}
}

// NewElementBlob renders a tree in the standard wire form as an
// application/json blob.
func NewElementBlob(e Element) (Blob, error) {
	s, err := Text(e, Format{})
	if err != nil {
		return Blob{}, err
	}
	return Blob{Data: []byte(s), ContentType: ContentTypeJSON}, nil
}

// NewJSONBlob marshals any Go value to an application/json blob. The
// result is plain JSON, not the underscore-quoted dialect; use it for
// payloads whose keys are ordinary strings.
func NewJSONBlob(v any) (Blob, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Blob{}, err
	}
	return Blob{Data: data, ContentType: ContentTypeJSON}, nil
}

// Len returns the payload size in bytes.
func (b Blob) Len() int { return len(b.Data) }

// IsJSON reports whether the content type is application/json.
func (b Blob) IsJSON() bool {
	return strings.HasPrefix(b.ContentType, ContentTypeJSON)
}

// String returns the payload as text.
func (b Blob) String() string { return string(b.Data) }

// Element parses a JSON blob in the standard wire form into a tree.
func (b Blob) Element() (Element, error) {
	if !b.IsJSON() {
		return nil, fmt.Errorf("%w: blob is %q, not %s", ErrType, b.ContentType, ContentTypeJSON)
	}
	return Parse(string(b.Data))
}

// Decode unmarshals a plain-JSON blob into a Go value.
func (b Blob) Decode(v any) error {
	if !b.IsJSON() {
		return fmt.Errorf("%w: blob is %q, not %s", ErrType, b.ContentType, ContentTypeJSON)
	}
	return json.Unmarshal(b.Data, v)
}

// Digest returns the BLAKE2b-256 digest of the payload, for integrity
// checks on fetched blobs.
func (b Blob) Digest() [32]byte {
	return blake2b.Sum256(b.Data)
}
