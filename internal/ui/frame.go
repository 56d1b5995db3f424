package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/yahya0347/BGR-Pro/internal/cropbox"
	"github.com/yahya0347/BGR-Pro/internal/editor"
	"github.com/yahya0347/BGR-Pro/internal/render"
)

const (
	headerHeight = 24
	bottomHeight = 24
)

var toolbarWidth = 72

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var brushSizes = []int{6, 12, 20, 30, 45, 60, 90, 120}

var checkerLight = color.RGBA{220, 220, 220, 255}
var checkerDark = color.RGBA{192, 192, 192, 255}

var backdrop = &render.Backdrop{Size: 8, Light: checkerLight, Dark: checkerDark}

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 48, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
)

// Button represents an interactive UI element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

func buttonFill(state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return color.RGBA{180, 180, 180, 255}
	case StatePressed:
		return color.RGBA{150, 150, 150, 255}
	case StateDisabled:
		return color.RGBA{230, 230, 230, 255}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}

func buttonText(state ButtonState) image.Image {
	if state == StateDisabled {
		return image.NewUniform(color.RGBA{150, 150, 150, 255})
	}
	return image.Black
}

// ModeButton selects an edit mode from the toolbar.
type ModeButton struct {
	label    string
	mode     editor.Mode
	rect     image.Rectangle
	onSelect func()
}

func (mb *ModeButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, mb.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: buttonText(state), Face: basicfont.Face7x13,
		Dot: fixed.P(mb.rect.Min.X+4, mb.rect.Min.Y+16)}
	d.DrawString(mb.label)
}

func (mb *ModeButton) Rect() image.Rectangle { return mb.rect }

func (mb *ModeButton) SetRect(r image.Rectangle) {
	if r != mb.rect {
		mb.rect = r
	}
}

func (mb *ModeButton) Activate() {
	if mb.onSelect != nil {
		mb.onSelect()
	}
}

// ActionButton triggers a named action from the toolbar.
type ActionButton struct {
	label      string
	rect       image.Rectangle
	onActivate func()
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, ab.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: buttonText(state), Face: basicfont.Face7x13,
		Dot: fixed.P(ab.rect.Min.X+4, ab.rect.Min.Y+16)}
	d.DrawString(ab.label)
}

func (ab *ActionButton) Rect() image.Rectangle { return ab.rect }

func (ab *ActionButton) SetRect(r image.Rectangle) {
	if r != ab.rect {
		ab.rect = r
	}
}

func (ab *ActionButton) Activate() {
	if ab.onActivate != nil {
		ab.onActivate()
	}
}

// Shortcut is a clickable hint in the bottom bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	render.Rect(dst, s.rect, color.Black, 1)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

var toolButtons []Button
var shortcutRects []Shortcut
var brushRects []image.Rectangle
var hoverTool = -1
var hoverShortcut = -1
var hoverBrush = -1

func fitZoom(img *image.RGBA, winW, winH int) float64 {
	availW := winW - toolbarWidth
	availH := winH - headerHeight - bottomHeight
	zx := float64(availW) / float64(img.Bounds().Dx())
	zy := float64(availH) / float64(img.Bounds().Dy())
	if zx < zy {
		return zx
	}
	return zy
}

// canvasRect returns the destination rectangle for drawing the image. It
// anchors the canvas origin just below the header so the image position
// stays stable while cropping shrinks the surface.
func canvasRect(img *image.RGBA, zoom float64) image.Rectangle {
	w := int(float64(img.Bounds().Dx()) * zoom)
	h := int(float64(img.Bounds().Dy()) * zoom)
	return image.Rect(toolbarWidth, headerHeight, toolbarWidth+w, headerHeight+h)
}

func brushRowHeight(size int) int {
	r := previewRadius(size)
	h := 2*r + 6
	if h < 18 {
		return 18
	}
	return h
}

func previewRadius(size int) int {
	r := size / 2
	if max := toolbarWidth/2 - 6; r > max {
		r = max
	}
	if r < 2 {
		r = 2
	}
	return r
}

type paintState struct {
	width, height int
	img           *image.RGBA
	zoom          float64
	mode          editor.Mode
	brushSize     int
	hasOriginal   bool
	canUndo       bool
	canRedo       bool

	cropRect image.Rectangle

	hover         image.Point
	hoverInCanvas bool
	cursorHint    string

	message      string
	messageUntil time.Time

	handleShortcut func(string)
}

func modeLabel(m editor.Mode) string {
	switch m {
	case editor.ModeRestore:
		return "restore"
	case editor.ModeCrop:
		return "crop"
	default:
		return "erase"
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	backdrop.Fill(b.RGBA())
	if ctx.Err() != nil {
		return
	}

	dst := canvasRect(st.img, st.zoom)
	xdraw.NearestNeighbor.Scale(b.RGBA(), dst, st.img, st.img.Bounds(), draw.Over, nil)
	if ctx.Err() != nil {
		return
	}

	if st.mode == editor.ModeCrop && !st.cropRect.Empty() {
		sel := st.cropRect.Canon()
		r := image.Rect(
			dst.Min.X+int(float64(sel.Min.X)*st.zoom),
			dst.Min.Y+int(float64(sel.Min.Y)*st.zoom),
			dst.Min.X+int(float64(sel.Max.X)*st.zoom),
			dst.Min.Y+int(float64(sel.Max.Y)*st.zoom),
		)
		render.DashedRect(b.RGBA(), r, 4, 2, color.White, color.Black)
		for _, hr := range cropbox.HandleRects(r) {
			if ctx.Err() != nil {
				return
			}
			render.FillRect(b.RGBA(), hr, color.White)
			render.Rect(b.RGBA(), hr, color.Black, 1)
		}
	}

	if st.mode != editor.ModeCrop && st.hoverInCanvas {
		ring := int(float64(st.brushSize) / 2 * st.zoom)
		render.CircleOutline(b.RGBA(), st.hover.X, st.hover.Y, ring, color.White)
		render.CircleOutline(b.RGBA(), st.hover.X, st.hover.Y, ring+1, color.Black)
	}

	if ctx.Err() != nil {
		return
	}

	drawHeader(b.RGBA(), st)
	drawToolbar(b.RGBA(), st)
	drawShortcuts(b.RGBA(), st)

	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: b.RGBA(), Src: image.Black, Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		draw.Draw(b.RGBA(), rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
		render.Rect(b.RGBA(), rect, color.Black, 2)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawHeader(dst *image.RGBA, st paintState) {
	draw.Draw(dst, image.Rect(0, 0, st.width, headerHeight),
		&image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)

	title := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	title.DrawString("BGR Pro")

	status := fmt.Sprintf("%dx%d  %s %dpx  %.0f%%",
		st.img.Bounds().Dx(), st.img.Bounds().Dy(), modeLabel(st.mode), st.brushSize, st.zoom*100)
	if !st.hasOriginal {
		status += "  (no restore reference)"
	}
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(toolbarWidth+8, 16)}
	d.DrawString(status)
}

func drawToolbar(dst *image.RGBA, st paintState) {
	draw.Draw(dst, image.Rect(0, headerHeight, toolbarWidth, st.height-bottomHeight),
		&image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)

	y := headerHeight
	for i, btn := range toolButtons {
		r := image.Rect(0, y, toolbarWidth, y+24)
		btn.SetRect(r)
		state := StateDefault
		switch b := btn.(type) {
		case *ModeButton:
			if b.mode == st.mode {
				state = StatePressed
			}
			if b.mode == editor.ModeRestore && !st.hasOriginal {
				state = StateDisabled
			}
		case *ActionButton:
			if (b.label == "^Z:Undo" && !st.canUndo) || (b.label == "^Y:Redo" && !st.canRedo) {
				state = StateDisabled
			}
		}
		if state == StateDefault && i == hoverTool {
			state = StateHover
		}
		btn.Draw(dst, state)
		y += 24
	}

	if st.mode == editor.ModeCrop {
		brushRects = brushRects[:0]
		return
	}

	// brush size swatches below the buttons
	y += 4
	brushRects = brushRects[:0]
	for i, size := range brushSizes {
		h := brushRowHeight(size)
		rect := image.Rect(0, y, toolbarWidth, y+h)
		c := color.RGBA{200, 200, 200, 255}
		if size == st.brushSize {
			c = color.RGBA{150, 150, 150, 255}
		} else if i == hoverBrush {
			c = color.RGBA{180, 180, 180, 255}
		}
		draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(4, y+12)}
		d.DrawString(fmt.Sprintf("%d", size))
		render.FilledCircle(dst, (toolbarWidth+24)/2, y+h/2, previewRadius(size), color.RGBA{80, 80, 80, 255})
		brushRects = append(brushRects, rect)
		y += h
	}
}

func drawShortcuts(dst *image.RGBA, st paintState) {
	rect := image.Rect(0, st.height-bottomHeight, st.width, st.height)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]
	trigger := st.handleShortcut

	zoomStr := fmt.Sprintf("+/-:zoom (%.0f%%)", st.zoom*100)
	var shortcuts []Shortcut
	if st.mode == editor.ModeCrop {
		shortcuts = []Shortcut{
			{label: "Enter:apply", action: func() { trigger("apply") }},
			{label: "Esc:cancel", action: func() { trigger("cancel") }},
			{label: zoomStr},
			{label: "Q:quit", action: func() { trigger("quit") }},
		}
	} else {
		shortcuts = []Shortcut{
			{label: "^Z:undo", action: func() { trigger("undo") }},
			{label: "^Y:redo", action: func() { trigger("redo") }},
			{label: "^S:save", action: func() { trigger("save") }},
			{label: "^C:copy", action: func() { trigger("copy") }},
			{label: "[/]:brush", action: nil},
			{label: zoomStr},
			{label: "Q:quit", action: func() { trigger("quit") }},
		}
	}
	x := toolbarWidth + 4
	y := st.height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}

	if st.cursorHint != "" {
		d := &font.Drawer{Face: basicfont.Face7x13}
		w := d.MeasureString(st.cursorHint).Ceil()
		hd := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
			Dot: fixed.P(st.width-w-4, y)}
		hd.DrawString(st.cursorHint)
	}
}
