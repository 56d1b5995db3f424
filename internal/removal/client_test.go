package removal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yahya0347/BGR-Pro/internal/ingest"
)

func TestRemoveRoundTrip(t *testing.T) {
	want := []byte("png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var req removeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.MIMEType != ingest.MIMEJPEG {
			t.Errorf("mime = %s", req.MIMEType)
		}
		if got, _ := base64.StdEncoding.DecodeString(req.Image); string(got) != "input" {
			t.Errorf("payload = %q", got)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token")
		}
		json.NewEncoder(w).Encode(removeResponse{Image: base64.StdEncoding.EncodeToString(want)})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithAPIKey("secret"))
	got, err := c.Remove(context.Background(), []byte("input"), ingest.MIMEJPEG)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("payload = %q, want %q", got, want)
	}
}

func TestRemoveRejectsUnknownMIME(t *testing.T) {
	c := NewClient("http://unused.invalid")
	_, err := c.Remove(context.Background(), []byte("x"), "image/tiff")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestRemoveServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Remove(context.Background(), []byte("x"), ingest.MIMEPNG)
	if !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}

func TestRemoveErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(removeResponse{Error: "model offline"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Remove(context.Background(), []byte("x"), ingest.MIMEPNG)
	if !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}

func TestRemoveEmptyImage(t *testing.T) {
	responses := []removeResponse{
		{},
		{Image: "!!not-b64!!"},
	}
	for i, resp := range responses {
		resp := resp
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(resp)
		}))
		c := NewClient(srv.URL)
		_, err := c.Remove(context.Background(), []byte("x"), ingest.MIMEPNG)
		srv.Close()
		if !errors.Is(err, ErrNoImage) {
			t.Fatalf("case %d: expected ErrNoImage, got %v", i, err)
		}
	}
}
