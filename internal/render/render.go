// Package render provides the software drawing primitives used by the
// window chrome and overlays. Everything draws directly into an
// *image.RGBA; there is no GPU path.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Checkerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// Backdrop caches a checkerboard fill so repaints at a stable window size
// reduce to a single copy.
type Backdrop struct {
	Size  int
	Light color.Color
	Dark  color.Color

	cache *image.RGBA
}

// Fill covers dst with the checkerboard, regenerating the cache when the
// destination bounds change.
func (b *Backdrop) Fill(dst *image.RGBA) {
	bounds := dst.Bounds()
	if b.cache == nil || b.cache.Bounds() != bounds {
		b.cache = image.NewRGBA(bounds)
		Checkerboard(b.cache, bounds, b.Size, b.Light, b.Dark)
	}
	draw.Draw(dst, bounds, b.cache, image.Point{}, draw.Src)
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// Line draws a straight line between two points using Bresenham's
// algorithm with square thick pixels.
func Line(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect outlines rect with the given color and thickness.
func Rect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	Line(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	Line(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	Line(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	Line(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// FillRect paints rect of img with a solid color.
func FillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, &image.Uniform{col}, image.Point{}, draw.Src)
}

// DashedLine draws an axis-aligned dashed line alternating between two
// colors so the dashes stay visible over any backdrop.
func DashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	if length < 0 {
		length = -length
	}
	set := func(offset int, col color.Color) {
		for t := 0; t < thickness; t++ {
			if horiz {
				if x0 < x1 {
					img.Set(x0+offset, y0+t, col)
				} else {
					img.Set(x0-offset, y0+t, col)
				}
			} else {
				if y0 < y1 {
					img.Set(x0+t, y0+offset, col)
				} else {
					img.Set(x0+t, y0-offset, col)
				}
			}
		}
	}
	for i := 0; i <= length; i += dash * 2 {
		for j := 0; j < dash && i+j <= length; j++ {
			set(i+j, c1)
		}
		for j := 0; j < dash && i+dash+j <= length; j++ {
			set(i+dash+j, c2)
		}
	}
}

// DashedRect outlines rect with dashed lines.
func DashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	DashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	DashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	DashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	DashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}

// FilledCircle paints a solid disc centred at (cx, cy).
func FilledCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(img.Bounds()) {
					img.Set(px, py, col)
				}
			}
		}
	}
}

// CircleOutline draws a one pixel circle using the midpoint algorithm.
// The brush cursor ring uses it so the hovered footprint is visible
// without obscuring pixels underneath.
func CircleOutline(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}
