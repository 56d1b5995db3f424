// Package raster owns the pixel buffers the editor works on. A Surface is
// the single mutable raster shared by the brush, crop and history layers;
// snapshots taken from it are plain *image.RGBA copies that are never
// mutated after capture.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrDecode reports that an input could not be decoded as a supported
// raster format (PNG, JPEG or WEBP).
var ErrDecode = errors.New("unsupported or corrupt image")

// ErrOutOfBounds reports that a requested region is not fully contained in
// the surface. Callers are expected to clamp before extracting.
var ErrOutOfBounds = errors.New("region outside surface bounds")

// Decode reads an encoded image and returns a zero-based RGBA buffer of its
// native dimensions.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch format {
	case "png", "jpeg", "webp":
	default:
		return nil, fmt.Errorf("%w: %s", ErrDecode, format)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// Surface is a mutable raster with zero-based bounds.
type Surface struct {
	img *image.RGBA
}

// New creates a surface that adopts buf as its contents. Callers that need
// to keep buf untouched should pass a copy.
func New(buf *image.RGBA) *Surface {
	return &Surface{img: buf}
}

// RGBA exposes the live pixel data for drawing. Mutations through the
// returned image are visible to every holder of the surface.
func (s *Surface) RGBA() *image.RGBA { return s.img }

// Bounds returns the current surface extents.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Snapshot captures an immutable copy of the current contents.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Restore replaces the surface contents with buf, resizing the surface to
// buf's dimensions. The buffer itself is copied so later edits do not bleed
// into history snapshots.
func (s *Surface) Restore(buf *image.RGBA) {
	img := image.NewRGBA(buf.Bounds())
	copy(img.Pix, buf.Pix)
	s.img = img
}

// Extract copies the given sub-rectangle out of the surface. The rectangle
// must be non-empty and fully contained in the surface bounds.
func (s *Surface) Extract(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() || !rect.In(s.img.Bounds()) {
		return nil, fmt.Errorf("%w: %v in %v", ErrOutOfBounds, rect, s.img.Bounds())
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), s.img, rect.Min, draw.Src)
	return out, nil
}
