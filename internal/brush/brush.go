// Package brush mutates the working buffer along pointer-drag stroke
// segments. Erase punches transparency; Restore reveals the untouched
// original through the stroke mask.
package brush

import (
	"image"
	"image/color"
)

// Mode selects what a stroke does to the working buffer.
type Mode int

const (
	// Erase drives alpha under the stroke to zero.
	Erase Mode = iota
	// Restore overwrites pixels under the stroke with the original buffer.
	Restore
)

// Diameter limits enforced on every segment.
const (
	MinDiameter = 1
	MaxDiameter = 150
)

// ClampDiameter brings d into the supported brush range.
func ClampDiameter(d int) int {
	if d < MinDiameter {
		return MinDiameter
	}
	if d > MaxDiameter {
		return MaxDiameter
	}
	return d
}

// StrokeSegment composites one segment of a stroke onto working. A filled
// disc of the brush diameter is stamped at every step of the line walk, so
// segments get round caps and adjacent segments sharing an endpoint join
// without gaps. Pixels outside the working bounds are skipped.
//
// Restore samples original at identical coordinates; working and original
// are expected to share dimensions. A Restore segment with no original is a
// silent no-op.
func StrokeSegment(working, original *image.RGBA, mode Mode, diameter int, from, to image.Point) {
	if working == nil {
		return
	}
	if mode == Restore && original == nil {
		return
	}
	diameter = ClampDiameter(diameter)
	radius := diameter / 2

	// Bresenham walk, stamping at each step including both endpoints.
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
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
		stampDisc(working, original, mode, x0, y0, radius)
		if x0 == x1 && y0 == y1 {
			return
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

func stampDisc(working, original *image.RGBA, mode Mode, cx, cy, r int) {
	b := working.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			px := cx + dx
			py := cy + dy
			if !image.Pt(px, py).In(b) {
				continue
			}
			switch mode {
			case Erase:
				working.SetRGBA(px, py, color.RGBA{})
			case Restore:
				if image.Pt(px, py).In(original.Bounds()) {
					working.SetRGBA(px, py, original.RGBAAt(px, py))
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
