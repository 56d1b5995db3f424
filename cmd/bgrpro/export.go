package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yahya0347/BGR-Pro/internal/export"
	"github.com/yahya0347/BGR-Pro/internal/raster"
)

// exportCmd re-encodes an already edited image into another format.
type exportCmd struct {
	file   string
	format string
	*root
	fs *flag.FlagSet
}

func (x *exportCmd) FlagSet() *flag.FlagSet {
	return x.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	x := &exportCmd{root: r, fs: fs}
	fs.StringVar(&x.file, "file", "", "image file to convert (png, jpeg or webp)")
	fs.StringVar(&x.format, "format", "png", "output format (png, jpg, pdf)")
	fs.Usage = usageFunc(x)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if x.file == "" {
		return nil, &UsageError{of: x}
	}
	return x, nil
}

func (x *exportCmd) Run() error {
	format, err := export.ParseFormat(x.format)
	if err != nil {
		return err
	}
	f, err := os.Open(x.file)
	if err != nil {
		return err
	}
	img, err := raster.Decode(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", x.file, err)
	}
	path, err := export.WriteFile(x.saveDir, img, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	if x.notifier != nil {
		x.notifier.Exported(path)
	}
	return nil
}
