package editor

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func opaque(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 128, G: 64, B: 32, A: 255})
		}
	}
	return img
}

func clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

func TestEraseUndoRedoRoundTrip(t *testing.T) {
	s := New(opaque(200, 100), WithBrushSize(11))
	loaded := clone(s.Working())

	// One stroke across the full width.
	s.PointerDown(image.Pt(0, 50))
	s.PointerMove(image.Pt(100, 50))
	s.PointerUp(image.Pt(199, 50))

	if s.Working().RGBAAt(100, 50).A != 0 {
		t.Fatal("stroke did not erase")
	}
	erased := clone(s.Working())

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if !bytes.Equal(s.Working().Pix, loaded.Pix) {
		t.Fatal("undo did not restore the loaded image")
	}
	if s.CanUndo() {
		t.Fatal("canUndo should be false at the baseline")
	}
	if !s.CanRedo() {
		t.Fatal("canRedo should be true after an undo")
	}
	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if !bytes.Equal(s.Working().Pix, erased.Pix) {
		t.Fatal("redo did not reproduce the post-erase buffer exactly")
	}
}

func TestStrokeCommitsOneSnapshot(t *testing.T) {
	s := New(opaque(50, 50))
	s.PointerDown(image.Pt(10, 10))
	for x := 11; x < 40; x++ {
		s.PointerMove(image.Pt(x, 10))
	}
	s.PointerUp(image.Pt(40, 10))
	if !s.CanUndo() {
		t.Fatal("stroke must be undoable")
	}
	s.Undo()
	if s.CanUndo() {
		t.Fatal("a whole drag must commit exactly one history entry")
	}
}

func TestPointerLeaveCommitsStroke(t *testing.T) {
	s := New(opaque(50, 50))
	s.PointerDown(image.Pt(10, 10))
	s.PointerMove(image.Pt(20, 10))
	s.PointerLeave(image.Pt(30, 10))
	if !s.CanUndo() {
		t.Fatal("pointer-leave must commit like pointer-up")
	}
}

func TestRestoreStroke(t *testing.T) {
	original := opaque(60, 60)
	working := clone(original)
	s := New(working, WithOriginal(clone(original)), WithBrushSize(9))

	s.PointerDown(image.Pt(10, 30))
	s.PointerUp(image.Pt(50, 30))
	if s.Working().RGBAAt(30, 30).A != 0 {
		t.Fatal("erase stroke missing")
	}

	s.SetMode(ModeRestore)
	s.PointerDown(image.Pt(10, 30))
	s.PointerUp(image.Pt(50, 30))
	if got := s.Working().RGBAAt(30, 30); got != original.RGBAAt(30, 30) {
		t.Fatalf("restore did not bring back the original pixel: %+v", got)
	}
}

func TestRestoreWithoutOriginalIsSilentNoOp(t *testing.T) {
	s := New(opaque(40, 40), WithMode(ModeRestore))
	before := clone(s.Working())
	s.PointerDown(image.Pt(5, 5))
	s.PointerMove(image.Pt(30, 30))
	s.PointerUp(image.Pt(35, 35))
	if !bytes.Equal(before.Pix, s.Working().Pix) {
		t.Fatal("restore without reference changed pixels")
	}
	if s.CanUndo() {
		t.Fatal("a no-op stroke must not push history")
	}
}

func TestMismatchedOriginalIsIgnored(t *testing.T) {
	s := New(opaque(40, 40), WithOriginal(opaque(10, 10)))
	if s.HasOriginal() {
		t.Fatal("original with different dimensions must be rejected")
	}
}

func TestEnteringCropModeSeedsDefaultRect(t *testing.T) {
	s := New(opaque(200, 100))
	s.SetMode(ModeCrop)
	want := image.Rect(20, 10, 180, 90)
	if s.Crop().Rect() != want {
		t.Fatalf("default crop rect %v, want %v", s.Crop().Rect(), want)
	}
}

func TestApplyCropShrinksBothSurfacesAndCommits(t *testing.T) {
	original := opaque(100, 80)
	s := New(clone(original), WithOriginal(clone(original)))
	s.SetMode(ModeCrop)
	s.Crop().SetRect(image.Rect(10, 20, 60, 70))
	if !s.ApplyCrop() {
		t.Fatal("apply rejected a valid rect")
	}
	if !s.Bounds().Eq(image.Rect(0, 0, 50, 50)) {
		t.Fatalf("working surface not resized: %v", s.Bounds())
	}
	if s.Mode() != ModeErase {
		t.Fatal("apply must return to the default edit mode")
	}
	if !s.Crop().Rect().Empty() {
		t.Fatal("apply must clear the selection")
	}
	if !s.CanUndo() {
		t.Fatal("apply must push one history snapshot")
	}

	// Restore still works on the cropped pair: dimensions moved in
	// lockstep.
	s.SetMode(ModeErase)
	s.PointerDown(image.Pt(25, 25))
	s.PointerUp(image.Pt(25, 25))
	s.SetMode(ModeRestore)
	s.PointerDown(image.Pt(25, 25))
	s.PointerUp(image.Pt(25, 25))
	if got := s.Working().RGBAAt(25, 25); got.A != 255 {
		t.Fatalf("restore after crop failed: %+v", got)
	}
}

func TestApplyCropRejectsDegenerateRect(t *testing.T) {
	s := New(opaque(100, 80))
	s.SetMode(ModeCrop)
	s.Crop().SetRect(image.Rect(0, 0, 0, 0))
	before := clone(s.Working())
	if s.ApplyCrop() {
		t.Fatal("apply accepted a zero-area rect")
	}
	if s.Mode() != ModeCrop {
		t.Fatal("rejected apply must stay in crop mode")
	}
	if s.CanUndo() {
		t.Fatal("rejected apply must not push history")
	}
	if !bytes.Equal(before.Pix, s.Working().Pix) {
		t.Fatal("rejected apply mutated the surface")
	}
}

func TestApplyCropClampsToSurface(t *testing.T) {
	s := New(opaque(50, 50))
	s.SetMode(ModeCrop)
	s.Crop().SetRect(image.Rect(40, 40, 120, 120))
	if !s.ApplyCrop() {
		t.Fatal("apply rejected a clampable rect")
	}
	if !s.Bounds().Eq(image.Rect(0, 0, 10, 10)) {
		t.Fatalf("clamped crop produced %v", s.Bounds())
	}
}

func TestCancelCropLeavesSurfacesAlone(t *testing.T) {
	s := New(opaque(50, 50))
	before := clone(s.Working())
	s.SetMode(ModeCrop)
	s.PointerDown(image.Pt(0, 0))
	s.PointerMove(image.Pt(30, 30))
	s.PointerUp(image.Pt(30, 30))
	s.CancelCrop()
	if s.Mode() != ModeErase {
		t.Fatal("cancel must leave crop mode")
	}
	if !s.Crop().Rect().Empty() {
		t.Fatal("cancel must discard the rect")
	}
	if !bytes.Equal(before.Pix, s.Working().Pix) {
		t.Fatal("cancel mutated the surface")
	}
	if s.CanUndo() {
		t.Fatal("cancel must not push history")
	}
}

func TestModeSwitchDiscardsCropRect(t *testing.T) {
	s := New(opaque(50, 50))
	s.SetMode(ModeCrop)
	if s.Crop().Rect().Empty() {
		t.Fatal("expected seeded rect")
	}
	s.SetMode(ModeErase)
	if !s.Crop().Rect().Empty() {
		t.Fatal("mode switch must discard the selection")
	}
}
