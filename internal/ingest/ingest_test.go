package ingest

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

func TestSniff(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	cases := []struct {
		name string
		data []byte
		mime string
		err  error
	}{
		{"png", buf.Bytes(), MIMEPNG, nil},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0}, MIMEJPEG, nil},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), MIMEWEBP, nil},
		{"text", []byte("hello"), "", ErrUnsupported},
		{"short riff", []byte("RIFF"), "", ErrUnsupported},
	}
	for _, tc := range cases {
		mime, err := Sniff(tc.data)
		if !errors.Is(err, tc.err) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.err)
		}
		if mime != tc.mime {
			t.Fatalf("%s: mime = %q, want %q", tc.name, mime, tc.mime)
		}
	}
}

func TestDataURI(t *testing.T) {
	p := Payload{Data: []byte{1, 2, 3}, MIME: MIMEPNG}
	uri := p.DataURI()
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %s", uri)
	}
	if !strings.HasSuffix(uri, "AQID") {
		t.Fatalf("unexpected payload encoding: %s", uri)
	}
}
