// Package editor composes the raster surfaces, brush, crop controller and
// history log into one edit session. All mutation happens synchronously on
// pointer events or explicit commands; a session is owned by a single
// window loop.
package editor

import (
	"image"

	"github.com/yahya0347/BGR-Pro/internal/brush"
	"github.com/yahya0347/BGR-Pro/internal/cropbox"
	"github.com/yahya0347/BGR-Pro/internal/history"
	"github.com/yahya0347/BGR-Pro/internal/raster"
)

// Mode selects how pointer input is interpreted.
type Mode int

const (
	// ModeErase paints transparency with the brush.
	ModeErase Mode = iota
	// ModeRestore paints the original image back through the brush.
	ModeRestore
	// ModeCrop manipulates the crop rectangle.
	ModeCrop
)

// DefaultBrushSize is the brush diameter used until the user picks another.
const DefaultBrushSize = 30

// Session is the live edit state over one image. The working surface is
// what the user sees and exports; the original surface is the untouched
// source used as the restore reference. Both always share dimensions, and
// a crop resizes them together.
type Session struct {
	working  *raster.Surface
	original *raster.Surface
	hist     *history.Log
	crop     cropbox.Controller

	mode      Mode
	brushSize int

	strokeActive bool
	strokeDirty  bool
	last         image.Point
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithOriginal sets the restore reference buffer. A reference whose
// dimensions differ from the working buffer is ignored, which leaves
// restore disabled rather than sampling misaligned pixels.
func WithOriginal(buf *image.RGBA) Option {
	return func(s *Session) {
		if buf != nil && buf.Bounds().Eq(s.working.Bounds()) {
			s.original = raster.New(buf)
		}
	}
}

// WithHistoryLimit caps the number of retained snapshots.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.hist = history.NewLog(n) }
}

// WithBrushSize sets the initial brush diameter.
func WithBrushSize(d int) Option {
	return func(s *Session) { s.brushSize = brush.ClampDiameter(d) }
}

// WithMode sets the initial edit mode.
func WithMode(m Mode) Option {
	return func(s *Session) { s.mode = m }
}

// New creates a session over the working buffer. The buffer is adopted,
// not copied. The loaded image becomes the first history entry, so a
// freshly created session has nothing to undo but a defined baseline to
// return to.
func New(working *image.RGBA, opts ...Option) *Session {
	s := &Session{
		working:   raster.New(working),
		hist:      history.NewLog(0),
		mode:      ModeErase,
		brushSize: DefaultBrushSize,
	}
	for _, o := range opts {
		o(s)
	}
	if s.mode == ModeCrop {
		s.crop.EnsureDefault(s.working.Bounds())
	}
	s.hist.Push(s.working.Snapshot())
	return s
}

// Working exposes the live working buffer for rendering and export.
func (s *Session) Working() *image.RGBA { return s.working.RGBA() }

// Bounds returns the current surface extents.
func (s *Session) Bounds() image.Rectangle { return s.working.Bounds() }

// HasOriginal reports whether a restore reference is available.
func (s *Session) HasOriginal() bool { return s.original != nil }

// Mode returns the active edit mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches the edit mode. Entering crop mode seeds the default
// rectangle; leaving it by mode switch discards the selection without
// touching the surfaces.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	if s.mode == ModeCrop {
		s.crop.Clear()
	}
	s.mode = m
	if m == ModeCrop {
		s.crop.EnsureDefault(s.working.Bounds())
	}
	s.strokeActive = false
	s.strokeDirty = false
}

// BrushSize returns the current brush diameter.
func (s *Session) BrushSize() int { return s.brushSize }

// SetBrushSize clamps and stores the brush diameter.
func (s *Session) SetBrushSize(d int) { s.brushSize = brush.ClampDiameter(d) }

// Crop exposes the crop controller for rendering the selection overlay and
// hover cursor hints.
func (s *Session) Crop() *cropbox.Controller { return &s.crop }

// PointerDown starts a gesture at p in surface coordinates.
func (s *Session) PointerDown(p image.Point) {
	switch s.mode {
	case ModeCrop:
		s.crop.Begin(p)
	default:
		s.strokeActive = true
		s.last = p
		s.paint(p, p)
	}
}

// PointerMove extends the active gesture. Segments are composited per
// event so a drag renders as one continuous stroke.
func (s *Session) PointerMove(p image.Point) {
	switch s.mode {
	case ModeCrop:
		s.crop.Update(p)
	default:
		if !s.strokeActive {
			return
		}
		s.paint(s.last, p)
		s.last = p
	}
}

// PointerUp finishes the gesture. A stroke that changed pixels commits one
// history snapshot; a crop gesture only finalizes the rectangle.
func (s *Session) PointerUp(p image.Point) {
	switch s.mode {
	case ModeCrop:
		if s.crop.Active() {
			s.crop.Update(p)
			s.crop.End()
		}
	default:
		if !s.strokeActive {
			return
		}
		s.paint(s.last, p)
		s.strokeActive = false
		if s.strokeDirty {
			s.hist.Push(s.working.Snapshot())
			s.strokeDirty = false
		}
	}
}

// PointerLeave commits an in-flight gesture exactly like PointerUp; a drag
// that runs off the surface still counts as a finished stroke.
func (s *Session) PointerLeave(p image.Point) { s.PointerUp(p) }

func (s *Session) paint(from, to image.Point) {
	var ref *image.RGBA
	mode := brush.Erase
	if s.mode == ModeRestore {
		if s.original == nil {
			return
		}
		ref = s.original.RGBA()
		mode = brush.Restore
	}
	brush.StrokeSegment(s.working.RGBA(), ref, mode, s.brushSize, from, to)
	s.strokeDirty = true
}

// CanUndo reports whether an earlier snapshot exists.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a later snapshot exists.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Undo restores the previous snapshot into the working surface. Returns
// false at the history boundary, leaving the surface untouched.
func (s *Session) Undo() bool {
	buf := s.hist.Undo()
	if buf == nil {
		return false
	}
	s.working.Restore(buf)
	return true
}

// Redo restores the next snapshot into the working surface.
func (s *Session) Redo() bool {
	buf := s.hist.Redo()
	if buf == nil {
		return false
	}
	s.working.Restore(buf)
	return true
}

// ApplyCrop clamps the selection to the surface, extracts it from both
// surfaces, shrinks them to the result, records one history snapshot, and
// leaves crop mode. A selection that is empty after clamping is rejected:
// no mutation, no history entry, mode and rectangle unchanged.
func (s *Session) ApplyCrop() bool {
	if s.mode != ModeCrop {
		return false
	}
	r := s.crop.Rect().Canon().Intersect(s.working.Bounds())
	if r.Empty() {
		return false
	}
	cropped, err := s.working.Extract(r)
	if err != nil {
		return false
	}
	if s.original != nil {
		orig, err := s.original.Extract(r)
		if err != nil {
			// Reference no longer aligned; drop it rather than crop
			// surfaces to different extents.
			s.original = nil
		} else {
			s.original.Restore(orig)
		}
	}
	s.working.Restore(cropped)
	s.hist.Push(s.working.Snapshot())
	s.crop.Clear()
	s.mode = ModeErase
	return true
}

// CancelCrop discards the selection and leaves crop mode without touching
// the surfaces or the history.
func (s *Session) CancelCrop() {
	if s.mode != ModeCrop {
		return
	}
	s.crop.Clear()
	s.mode = ModeErase
}
