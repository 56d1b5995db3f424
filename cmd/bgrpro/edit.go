package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"

	"github.com/yahya0347/BGR-Pro/internal/editor"
	"github.com/yahya0347/BGR-Pro/internal/export"
	"github.com/yahya0347/BGR-Pro/internal/ingest"
	"github.com/yahya0347/BGR-Pro/internal/raster"
	"github.com/yahya0347/BGR-Pro/internal/removal"
	"github.com/yahya0347/BGR-Pro/internal/ui"
)

// editCmd opens an image in the interactive editor, running it through the
// background-removal service first unless told otherwise.
type editCmd struct {
	file        string
	endpoint    string
	apiKey      string
	format      string
	brushSize   int
	skipRemoval bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.file, "file", "", "image file to edit (png, jpeg or webp)")
	fs.StringVar(&e.endpoint, "endpoint", r.config.Removal.Endpoint, "background-removal service endpoint")
	fs.StringVar(&e.apiKey, "api-key", r.config.Removal.APIKey, "background-removal service API key")
	fs.StringVar(&e.format, "format", "png", "export format for ctrl+s (png, jpg, pdf)")
	fs.IntVar(&e.brushSize, "brush-size", r.config.Editor.BrushSize, "initial brush diameter in pixels")
	fs.BoolVar(&e.skipRemoval, "no-remove", false, "open the image directly without calling the removal service")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	format, err := export.ParseFormat(e.format)
	if err != nil {
		return err
	}

	payload, err := ingest.ReadFile(e.file)
	if err != nil {
		return err
	}
	original, err := raster.Decode(bytes.NewReader(payload.Data))
	if err != nil {
		return fmt.Errorf("decode %s: %w", e.file, err)
	}

	var working *image.RGBA
	if e.skipRemoval {
		working = image.NewRGBA(original.Bounds())
		draw.Draw(working, working.Bounds(), original, original.Bounds().Min, draw.Src)
	} else {
		if e.endpoint == "" {
			return fmt.Errorf("no removal endpoint configured; set removal.endpoint or pass -endpoint (or use -no-remove)")
		}
		client := removal.NewClient(e.endpoint, removal.WithAPIKey(e.apiKey))
		cut, err := client.Remove(context.Background(), payload.Data, payload.MIME)
		if err != nil {
			return fmt.Errorf("remove background: %w", err)
		}
		working, err = raster.Decode(bytes.NewReader(cut))
		if err != nil {
			return fmt.Errorf("decode removal result: %w", err)
		}
		if e.notifier != nil {
			e.notifier.Removed(e.file, working)
		}
	}

	session := editor.New(working,
		editor.WithOriginal(original),
		editor.WithBrushSize(e.brushSize),
		editor.WithHistoryLimit(e.config.Editor.HistoryLimit),
	)
	app := ui.New(session,
		ui.WithSaveDir(e.saveDir),
		ui.WithFormat(format),
		ui.WithNotifier(e.notifier),
	)
	app.Run()
	return nil
}
