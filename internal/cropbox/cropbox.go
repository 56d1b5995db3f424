// Package cropbox implements the crop-rectangle interaction: drawing a new
// rectangle, moving it, and resizing it through eight handles. The
// rectangle survives pointer-up; the in-flight action does not.
package cropbox

import "image"

// HandleSize is the side length of the square hotspot centred on each
// handle, in surface pixels.
const HandleSize = 8

// Handle identifies one of the eight resize hotspots on the rectangle
// border.
type Handle int

const (
	HandleNone Handle = iota
	HandleTL
	HandleT
	HandleTR
	HandleR
	HandleBR
	HandleB
	HandleBL
	HandleL
)

// ActionKind is what a pointer-down over the crop layer starts.
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionDraw replaces the rectangle with a fresh drag from the anchor.
	ActionDraw
	// ActionMove translates the whole rectangle.
	ActionMove
	// ActionResize drags one handle, editing the edges it touches.
	ActionResize
)

// Cursor names the pointer shape to show for an interaction target. The
// diagonal handle pairs share a cursor.
type Cursor string

const (
	CursorCrosshair Cursor = "crosshair"
	CursorMove      Cursor = "move"
	CursorNWSE      Cursor = "nwse-resize"
	CursorNESW      Cursor = "nesw-resize"
	CursorNS        Cursor = "ns-resize"
	CursorEW        Cursor = "ew-resize"
)

// HandleRects returns the hotspot for each handle, indexed by Handle-HandleTL.
func HandleRects(r image.Rectangle) [8]image.Rectangle {
	hs := HandleSize / 2
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	return [8]image.Rectangle{
		image.Rect(r.Min.X-hs, r.Min.Y-hs, r.Min.X+hs, r.Min.Y+hs), // tl
		image.Rect(cx-hs, r.Min.Y-hs, cx+hs, r.Min.Y+hs),           // t
		image.Rect(r.Max.X-hs, r.Min.Y-hs, r.Max.X+hs, r.Min.Y+hs), // tr
		image.Rect(r.Max.X-hs, cy-hs, r.Max.X+hs, cy+hs),           // r
		image.Rect(r.Max.X-hs, r.Max.Y-hs, r.Max.X+hs, r.Max.Y+hs), // br
		image.Rect(cx-hs, r.Max.Y-hs, cx+hs, r.Max.Y+hs),           // b
		image.Rect(r.Min.X-hs, r.Max.Y-hs, r.Min.X+hs, r.Max.Y+hs), // bl
		image.Rect(r.Min.X-hs, cy-hs, r.Min.X+hs, cy+hs),           // l
	}
}

// Classify decides what a pointer-down at p over rect starts. Handles win
// over the body; anywhere else begins a fresh draw.
func Classify(p image.Point, rect image.Rectangle) (ActionKind, Handle) {
	if !rect.Empty() {
		for i, hr := range HandleRects(rect) {
			if p.In(hr) {
				return ActionResize, Handle(i) + HandleTL
			}
		}
		if p.In(rect) {
			return ActionMove, HandleNone
		}
	}
	return ActionDraw, HandleNone
}

// CursorFor maps an interaction target to its pointer shape.
func CursorFor(kind ActionKind, h Handle) Cursor {
	switch kind {
	case ActionMove:
		return CursorMove
	case ActionResize:
		switch h {
		case HandleTL, HandleBR:
			return CursorNWSE
		case HandleTR, HandleBL:
			return CursorNESW
		case HandleT, HandleB:
			return CursorNS
		case HandleL, HandleR:
			return CursorEW
		}
	}
	return CursorCrosshair
}

// DefaultRect returns the rectangle used when crop mode is entered with no
// prior selection: centred, 80% of the surface.
func DefaultRect(bounds image.Rectangle) image.Rectangle {
	mx := bounds.Dx() / 10
	my := bounds.Dy() / 10
	return image.Rect(bounds.Min.X+mx, bounds.Min.Y+my, bounds.Max.X-mx, bounds.Max.Y-my)
}

// Controller runs one crop interaction at a time over a persistent
// rectangle.
type Controller struct {
	rect   image.Rectangle
	active bool
	kind   ActionKind
	handle Handle
	anchor image.Point
	start  image.Rectangle
}

// Rect returns the current, normalized selection. The zero rectangle means
// no selection.
func (c *Controller) Rect() image.Rectangle { return c.rect }

// SetRect replaces the selection, normalizing inverted extents.
func (c *Controller) SetRect(r image.Rectangle) { c.rect = r.Canon() }

// Clear drops the selection and any in-flight action.
func (c *Controller) Clear() {
	c.rect = image.Rectangle{}
	c.End()
}

// EnsureDefault installs the default selection if none exists. Call on crop
// mode entry.
func (c *Controller) EnsureDefault(bounds image.Rectangle) {
	if c.rect.Empty() {
		c.rect = DefaultRect(bounds)
	}
}

// Active reports whether a pointer interaction is in flight.
func (c *Controller) Active() bool { return c.active }

// Begin starts an interaction at the pointer-down point. The rectangle as
// of this moment is snapshotted; move and resize deltas apply to the
// snapshot rather than accumulating, so a gesture never drifts.
func (c *Controller) Begin(p image.Point) {
	c.kind, c.handle = Classify(p, c.rect)
	c.anchor = p
	c.start = c.rect
	c.active = true
	if c.kind == ActionDraw {
		c.rect = image.Rectangle{Min: p, Max: p}
		c.start = c.rect
	}
}

// Update recomputes the rectangle for the current pointer position. No-op
// when no interaction is in flight.
func (c *Controller) Update(p image.Point) {
	if !c.active {
		return
	}
	d := p.Sub(c.anchor)
	switch c.kind {
	case ActionDraw:
		c.rect = image.Rect(c.anchor.X, c.anchor.Y, p.X, p.Y)
	case ActionMove:
		c.rect = c.start.Add(d)
	case ActionResize:
		r := c.start
		switch c.handle {
		case HandleTL:
			r.Min.X += d.X
			r.Min.Y += d.Y
		case HandleT:
			r.Min.Y += d.Y
		case HandleTR:
			r.Max.X += d.X
			r.Min.Y += d.Y
		case HandleR:
			r.Max.X += d.X
		case HandleBR:
			r.Max.X += d.X
			r.Max.Y += d.Y
		case HandleB:
			r.Max.Y += d.Y
		case HandleBL:
			r.Min.X += d.X
			r.Max.Y += d.Y
		case HandleL:
			r.Min.X += d.X
		}
		c.rect = r.Canon()
	}
}

// End discards the in-flight action. The rectangle itself persists until
// the crop is applied, cancelled, or cleared.
func (c *Controller) End() {
	c.active = false
	c.kind = ActionNone
	c.handle = HandleNone
}
