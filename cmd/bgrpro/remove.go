package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yahya0347/BGR-Pro/internal/ingest"
	"github.com/yahya0347/BGR-Pro/internal/raster"
	"github.com/yahya0347/BGR-Pro/internal/removal"
)

// removeCmd runs background removal headlessly and writes the cutout PNG.
type removeCmd struct {
	file     string
	output   string
	endpoint string
	apiKey   string
	*root
	fs *flag.FlagSet
}

func (rc *removeCmd) FlagSet() *flag.FlagSet {
	return rc.fs
}

func parseRemoveCmd(args []string, r *root) (*removeCmd, error) {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	rc := &removeCmd{root: r, fs: fs}
	fs.StringVar(&rc.file, "file", "", "image file to process (png, jpeg or webp)")
	fs.StringVar(&rc.output, "output", "background_removed.png", "output PNG path")
	fs.StringVar(&rc.endpoint, "endpoint", r.config.Removal.Endpoint, "background-removal service endpoint")
	fs.StringVar(&rc.apiKey, "api-key", r.config.Removal.APIKey, "background-removal service API key")
	fs.Usage = usageFunc(rc)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rc.file == "" {
		return nil, &UsageError{of: rc}
	}
	return rc, nil
}

func (rc *removeCmd) Run() error {
	if rc.endpoint == "" {
		return fmt.Errorf("no removal endpoint configured; set removal.endpoint or pass -endpoint")
	}
	payload, err := ingest.ReadFile(rc.file)
	if err != nil {
		return err
	}
	client := removal.NewClient(rc.endpoint, removal.WithAPIKey(rc.apiKey))
	cut, err := client.Remove(context.Background(), payload.Data, payload.MIME)
	if err != nil {
		return fmt.Errorf("remove background: %w", err)
	}
	// Round-trip through the decoder so a malformed service response is
	// caught here rather than handed to downstream tools.
	img, err := raster.Decode(bytes.NewReader(cut))
	if err != nil {
		return fmt.Errorf("decode removal result: %w", err)
	}
	if err := os.WriteFile(rc.output, cut, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rc.output, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%dx%d)\n", rc.output, img.Bounds().Dx(), img.Bounds().Dy())
	if rc.notifier != nil {
		rc.notifier.Removed(rc.file, img)
	}
	return nil
}
