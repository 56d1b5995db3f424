// Package ingest turns a user-selected file into the payload the
// background-removal service accepts. Only the raster formats the editor
// can decode are let through.
package ingest

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
)

// ErrUnsupported reports an input that is not PNG, JPEG or WEBP.
var ErrUnsupported = errors.New("unsupported image type")

// MIME types accepted for upload.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEWEBP = "image/webp"
)

// Payload is an encoded image ready for upload.
type Payload struct {
	Data []byte
	MIME string
}

// ReadFile loads and sniffs an image file.
func ReadFile(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("read image: %w", err)
	}
	mime, err := Sniff(data)
	if err != nil {
		return Payload{}, fmt.Errorf("%s: %w", path, err)
	}
	return Payload{Data: data, MIME: mime}, nil
}

// Sniff identifies the image type from its magic bytes.
func Sniff(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return MIMEPNG, nil
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return MIMEJPEG, nil
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return MIMEWEBP, nil
	default:
		return "", ErrUnsupported
	}
}

// DataURI renders the payload as a base-64 data URI.
func (p Payload) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", p.MIME, base64.StdEncoding.EncodeToString(p.Data))
}
