// Package blob converts file content between its transport encoding and
// raw bytes, and derives metadata from the raw form.
package blob

import (
	"encoding/base64"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

var ErrInvalidEncoding = errors.New("content is not valid base64")

const fallbackMime = "application/octet-stream"

// Decode turns transport-encoded text into raw bytes. An empty string is a
// valid encoding of the empty blob.
func Decode(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return data, nil
}

// Encode is total: every byte sequence has a transport form.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// SniffMime derives a media type from the file name extension first, then
// from the leading bytes of the content. The extension wins so that a
// ".txt" holding JSON still reads as text. Parameters such as charset are
// stripped; the stored value is a bare type. Identical inputs always yield
// the identical result.
func SniffMime(data []byte, name string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return bareType(mt)
		}
	}
	if len(data) > 0 {
		return bareType(http.DetectContentType(data))
	}
	return fallbackMime
}

func bareType(mt string) string {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
