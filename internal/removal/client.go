// Package removal talks to the external image-to-image service that strips
// the background from a photo. The editor never blocks on it after the
// session starts: removal happens exactly once, before the editor is
// constructed.
package removal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yahya0347/BGR-Pro/internal/ingest"
)

// Error taxonomy for removal failures. Everything else is wrapped in
// ErrService.
var (
	// ErrInvalidFormat rejects payloads the service does not accept.
	ErrInvalidFormat = errors.New("image format not accepted by removal service")
	// ErrNoImage reports a response that carried no usable image.
	ErrNoImage = errors.New("no image in removal response")
	// ErrService covers transport and server-side failures.
	ErrService = errors.New("removal service error")
)

// Remover strips the background from an encoded image and returns an
// encoded PNG with transparency.
type Remover interface {
	Remove(ctx context.Context, data []byte, mimeType string) ([]byte, error)
}

const defaultTimeout = 90 * time.Second

// Client is the HTTP implementation of Remover.
type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
}

// ClientOption modifies a Client during creation.
type ClientOption func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mostly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpc = hc }
}

// WithAPIKey attaches a bearer token to every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// NewClient creates a removal client for the given endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type removeRequest struct {
	Image    string `json:"image"`
	MIMEType string `json:"mime_type"`
}

type removeResponse struct {
	Image string `json:"image"`
	Error string `json:"error,omitempty"`
}

// Remove uploads the image and returns the service's PNG with the
// background removed.
func (c *Client) Remove(ctx context.Context, data []byte, mimeType string) ([]byte, error) {
	switch mimeType {
	case ingest.MIMEPNG, ingest.MIMEJPEG, ingest.MIMEWEBP:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, mimeType)
	}

	body, err := json.Marshal(removeRequest{
		Image:    base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}

	var out removeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrService, out.Error)
	}
	if out.Image == "" {
		return nil, ErrNoImage
	}
	png, err := base64.StdEncoding.DecodeString(out.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	return png, nil
}
