package render

import (
	"image"
	"image/color"
	"testing"
)

var red = color.RGBA{255, 0, 0, 255}

func TestLineHitsBothEndpoints(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Line(img, 2, 3, 15, 11, red, 1)
	if img.RGBAAt(2, 3) != red {
		t.Fatalf("start pixel not set")
	}
	if img.RGBAAt(15, 11) != red {
		t.Fatalf("end pixel not set")
	}
}

func TestLineClipsAtBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	Line(img, -5, 5, 20, 5, red, 3)
	if img.RGBAAt(0, 5) != red || img.RGBAAt(9, 5) != red {
		t.Fatalf("line should cover the in-bounds span")
	}
}

func TestCheckerboardAlternates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	light := color.RGBA{220, 220, 220, 255}
	dark := color.RGBA{192, 192, 192, 255}
	Checkerboard(img, img.Bounds(), 4, light, dark)
	if img.RGBAAt(0, 0) != light {
		t.Fatalf("origin square = %v", img.RGBAAt(0, 0))
	}
	if img.RGBAAt(4, 0) != dark {
		t.Fatalf("adjacent square = %v", img.RGBAAt(4, 0))
	}
	if img.RGBAAt(4, 4) != light {
		t.Fatalf("diagonal square = %v", img.RGBAAt(4, 4))
	}
}

func TestBackdropCachesAcrossFills(t *testing.T) {
	b := &Backdrop{Size: 8, Light: color.White, Dark: color.Black}
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	b.Fill(img)
	first := b.cache
	b.Fill(img)
	if b.cache != first {
		t.Fatalf("cache regenerated for unchanged bounds")
	}
	bigger := image.NewRGBA(image.Rect(0, 0, 64, 64))
	b.Fill(bigger)
	if b.cache == first {
		t.Fatalf("cache not regenerated for new bounds")
	}
}

func TestFilledCircleRespectsRadius(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 21, 21))
	FilledCircle(img, 10, 10, 5, red)
	if img.RGBAAt(10, 10) != red {
		t.Fatalf("centre not painted")
	}
	if img.RGBAAt(10, 5) != red || img.RGBAAt(5, 10) != red {
		t.Fatalf("cardinal extremes not painted")
	}
	if img.RGBAAt(10, 4) == red {
		t.Fatalf("pixel outside radius painted")
	}
}

func TestCircleOutlineLeavesInteriorUntouched(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 21, 21))
	CircleOutline(img, 10, 10, 6, red)
	if img.RGBAAt(16, 10) != red || img.RGBAAt(10, 16) != red {
		t.Fatalf("rim not painted")
	}
	if img.RGBAAt(10, 10) == red {
		t.Fatalf("interior painted")
	}
}

func TestDashedRectDrawsCorners(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	DashedRect(img, image.Rect(5, 5, 25, 25), 4, 1, white, black)
	if c := img.RGBAAt(5, 5); c != white && c != black {
		t.Fatalf("corner pixel untouched")
	}
	if c := img.RGBAAt(15, 15); c == white || c == black {
		t.Fatalf("interior painted")
	}
}
