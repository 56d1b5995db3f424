package cropbox

import (
	"image"
	"testing"
)

func TestDrawNormalizesAnyDirection(t *testing.T) {
	var c Controller
	c.Begin(image.Pt(100, 100))
	c.Update(image.Pt(40, 40))
	c.End()
	want := image.Rect(40, 40, 100, 100)
	if c.Rect() != want {
		t.Fatalf("drag up-left produced %v, want %v", c.Rect(), want)
	}
	if c.Rect().Dx() != 60 || c.Rect().Dy() != 60 {
		t.Fatalf("unexpected extents %dx%d", c.Rect().Dx(), c.Rect().Dy())
	}
}

func TestResizeBottomRight(t *testing.T) {
	var c Controller
	c.SetRect(image.Rect(10, 10, 60, 60))
	// Pointer-down inside the br handle hotspot.
	c.Begin(image.Pt(60, 60))
	c.Update(image.Pt(80, 55))
	c.End()
	want := image.Rect(10, 10, 80, 55)
	if c.Rect() != want {
		t.Fatalf("br resize produced %v, want %v", c.Rect(), want)
	}
}

func TestResizeTopLeft(t *testing.T) {
	var c Controller
	c.SetRect(image.Rect(10, 10, 60, 60))
	c.Begin(image.Pt(10, 10))
	c.Update(image.Pt(30, 5))
	c.End()
	want := image.Rect(30, 5, 60, 60)
	if c.Rect() != want {
		t.Fatalf("tl resize produced %v, want %v", c.Rect(), want)
	}
	if c.Rect().Dx() != 30 || c.Rect().Dy() != 55 {
		t.Fatalf("unexpected extents %dx%d", c.Rect().Dx(), c.Rect().Dy())
	}
}

func TestResizePastOppositeEdgeFlipsOrigin(t *testing.T) {
	var c Controller
	c.SetRect(image.Rect(10, 10, 40, 40))
	c.Begin(image.Pt(40, 40))
	c.Update(image.Pt(0, 0))
	c.End()
	want := image.Rect(0, 0, 10, 10)
	if c.Rect() != want {
		t.Fatalf("inverted resize produced %v, want %v", c.Rect(), want)
	}
}

func TestMoveAppliesDeltaToAnchorSnapshot(t *testing.T) {
	var c Controller
	c.SetRect(image.Rect(20, 20, 50, 50))
	c.Begin(image.Pt(30, 30))
	c.Update(image.Pt(35, 32))
	c.Update(image.Pt(33, 31))
	c.Update(image.Pt(40, 25))
	c.End()
	// Only the final delta matters; intermediate moves must not accumulate.
	want := image.Rect(30, 15, 60, 45)
	if c.Rect() != want {
		t.Fatalf("move produced %v, want %v", c.Rect(), want)
	}
}

func TestClassify(t *testing.T) {
	rect := image.Rect(20, 20, 100, 100)
	cases := []struct {
		name   string
		p      image.Point
		kind   ActionKind
		handle Handle
	}{
		{"tl handle", image.Pt(20, 20), ActionResize, HandleTL},
		{"tr handle", image.Pt(99, 18), ActionResize, HandleTR},
		{"bottom mid handle", image.Pt(60, 101), ActionResize, HandleB},
		{"left mid handle", image.Pt(18, 60), ActionResize, HandleL},
		{"body", image.Pt(50, 50), ActionMove, HandleNone},
		{"outside", image.Pt(5, 5), ActionDraw, HandleNone},
	}
	for _, tc := range cases {
		kind, handle := Classify(tc.p, rect)
		if kind != tc.kind || handle != tc.handle {
			t.Fatalf("%s: got (%v,%v), want (%v,%v)", tc.name, kind, handle, tc.kind, tc.handle)
		}
	}
}

func TestClassifyWithoutRectAlwaysDraws(t *testing.T) {
	kind, handle := Classify(image.Pt(0, 0), image.Rectangle{})
	if kind != ActionDraw || handle != HandleNone {
		t.Fatalf("empty rect should classify as draw, got (%v,%v)", kind, handle)
	}
}

func TestCursorFor(t *testing.T) {
	cases := []struct {
		kind   ActionKind
		handle Handle
		want   Cursor
	}{
		{ActionResize, HandleTL, CursorNWSE},
		{ActionResize, HandleBR, CursorNWSE},
		{ActionResize, HandleTR, CursorNESW},
		{ActionResize, HandleBL, CursorNESW},
		{ActionResize, HandleT, CursorNS},
		{ActionResize, HandleB, CursorNS},
		{ActionResize, HandleL, CursorEW},
		{ActionResize, HandleR, CursorEW},
		{ActionMove, HandleNone, CursorMove},
		{ActionDraw, HandleNone, CursorCrosshair},
	}
	for _, tc := range cases {
		if got := CursorFor(tc.kind, tc.handle); got != tc.want {
			t.Fatalf("CursorFor(%v,%v) = %v, want %v", tc.kind, tc.handle, got, tc.want)
		}
	}
}

func TestDefaultRectEightyPercent(t *testing.T) {
	got := DefaultRect(image.Rect(0, 0, 200, 100))
	want := image.Rect(20, 10, 180, 90)
	if got != want {
		t.Fatalf("DefaultRect = %v, want %v", got, want)
	}
}

func TestEnsureDefaultKeepsExistingRect(t *testing.T) {
	var c Controller
	existing := image.Rect(1, 2, 3, 4)
	c.SetRect(existing)
	c.EnsureDefault(image.Rect(0, 0, 100, 100))
	if c.Rect() != existing {
		t.Fatalf("EnsureDefault replaced an existing rect: %v", c.Rect())
	}
}
