// Package export writes the edited image out. PNG keeps transparency;
// JPEG and PDF flatten onto an opaque white background first.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// Format selects the output encoding.
type Format int

const (
	PNG Format = iota
	JPEG
	PDF
)

// JPEGQuality matches the fixed quality the product has always exported at.
const JPEGQuality = 90

// baseName is the deterministic stem for every export.
const baseName = "background_removed"

// FileName returns the deterministic output name for a format.
func FileName(f Format) string {
	switch f {
	case JPEG:
		return baseName + ".jpg"
	case PDF:
		return baseName + ".pdf"
	default:
		return baseName + ".png"
	}
}

// ParseFormat maps a user-facing format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "pdf":
		return PDF, nil
	default:
		return PNG, fmt.Errorf("unknown export format %q", name)
	}
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img *image.RGBA, f Format) error {
	switch f {
	case JPEG:
		return jpeg.Encode(w, flattenWhite(img), &jpeg.Options{Quality: JPEGQuality})
	case PDF:
		return encodePDF(w, img)
	default:
		return png.Encode(w, img)
	}
}

// WriteFile encodes img into dir under the deterministic name and returns
// the written path.
func WriteFile(dir string, img *image.RGBA, f Format) (string, error) {
	path := filepath.Join(dir, FileName(f))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return "", fmt.Errorf("export: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// flattenWhite composites img over an opaque white canvas of the same size.
func flattenWhite(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// encodePDF emits a single page sized to the image, one pixel per point.
func encodePDF(w io.Writer, img *image.RGBA) error {
	width := float64(img.Bounds().Dx())
	height := float64(img.Bounds().Dy())
	var buf bytes.Buffer
	if err := png.Encode(&buf, flattenWhite(img)); err != nil {
		return err
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(baseName, opts, &buf)
	pdf.ImageOptions(baseName, 0, 0, width, height, false, opts, 0, "")
	return pdf.Output(w)
}
