// Package ui runs the interactive editor window. It owns the shiny event
// loop, maps pointer events into surface coordinates and routes them to
// the edit session, and paints the working image over a checkerboard so
// erased regions read as transparent.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/yahya0347/BGR-Pro/internal/clipboard"
	"github.com/yahya0347/BGR-Pro/internal/cropbox"
	"github.com/yahya0347/BGR-Pro/internal/editor"
	"github.com/yahya0347/BGR-Pro/internal/export"
	"github.com/yahya0347/BGR-Pro/internal/notify"
)

// App holds the window configuration around one edit session.
type App struct {
	session  *editor.Session
	saveDir  string
	format   export.Format
	notifier *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithSaveDir sets the directory exports are written into.
func WithSaveDir(dir string) Option { return func(a *App) { a.saveDir = dir } }

// WithFormat sets the export format used by the save action.
func WithFormat(f export.Format) Option { return func(a *App) { a.format = f } }

// WithNotifier routes export and copy events to desktop notifications.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App over the session.
func New(session *editor.Session, opts ...Option) *App {
	a := &App{
		session: session,
		saveDir: ".",
		format:  export.PNG,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

type quitEvent struct{}

func (a *App) Main(s screen.Screen) {
	sess := a.session

	// Widen the toolbar until the longest button label fits.
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString("BGR Pro").Ceil() + 8
	for _, lbl := range []string{"E:Erase", "R:Restore", "C:Crop", "^Z:Undo", "^Y:Redo"} {
		if w := d.MeasureString(lbl).Ceil() + 8; w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}

	bounds := sess.Bounds()
	width := bounds.Dx() + toolbarWidth
	height := bounds.Dy() + headerHeight + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "BGR Pro"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	zoom := fitZoom(sess.Working(), width, height)
	var dragging bool
	var hover image.Point
	var hoverInCanvas bool
	var cursorHint string
	var message string
	var messageUntil time.Time

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()
	cancelPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	repaint := func() { w.Send(paint.Event{}) }
	flash := func(text string) {
		message = text
		log.Print(text)
		messageUntil = time.Now().Add(2 * time.Second)
		repaint()
	}

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys []KeyShortcut, fn func()) {
		actions[name] = fn
		for _, sc := range keys {
			keyboardAction[sc] = name
		}
	}

	register("undo", []KeyShortcut{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		if sess.Undo() {
			repaint()
		}
	})
	register("redo", []KeyShortcut{{Rune: 'y', Modifiers: key.ModControl}}, func() {
		if sess.Redo() {
			repaint()
		}
	})
	register("save", []KeyShortcut{{Rune: 's', Modifiers: key.ModControl}}, func() {
		path, err := export.WriteFile(a.saveDir, sess.Working(), a.format)
		if err != nil {
			log.Printf("save: %v", err)
			return
		}
		flash(fmt.Sprintf("saved %s", path))
		if a.notifier != nil {
			a.notifier.Exported(path)
		}
	})
	register("copy", []KeyShortcut{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := clipboard.WriteImage(sess.Working()); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		flash("image copied to clipboard")
		if a.notifier != nil {
			a.notifier.Copied("image")
		}
	})
	register("apply", []KeyShortcut{{Code: key.CodeReturnEnter}}, func() {
		if sess.Mode() != editor.ModeCrop {
			return
		}
		if sess.ApplyCrop() {
			b := sess.Bounds()
			cursorHint = ""
			flash(fmt.Sprintf("cropped to %dx%d", b.Dx(), b.Dy()))
		} else {
			flash("selection is outside the image")
		}
	})
	register("cancel", []KeyShortcut{{Code: key.CodeEscape}}, func() {
		if sess.Mode() != editor.ModeCrop {
			return
		}
		sess.CancelCrop()
		cursorHint = ""
		repaint()
	})
	register("quit", nil, func() { w.Send(quitEvent{}) })

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		repaint()
	}

	setMode := func(m editor.Mode) {
		if m == editor.ModeRestore && !sess.HasOriginal() {
			flash("no restore reference loaded")
			return
		}
		sess.SetMode(m)
		cursorHint = ""
		repaint()
	}

	toolButtons = []Button{
		&ModeButton{label: "E:Erase", mode: editor.ModeErase, onSelect: func() { setMode(editor.ModeErase) }},
		&ModeButton{label: "R:Restore", mode: editor.ModeRestore, onSelect: func() { setMode(editor.ModeRestore) }},
		&ModeButton{label: "C:Crop", mode: editor.ModeCrop, onSelect: func() { setMode(editor.ModeCrop) }},
		&ActionButton{label: "^Z:Undo", onActivate: func() { handleShortcut("undo") }},
		&ActionButton{label: "^Y:Redo", onActivate: func() { handleShortcut("redo") }},
	}

	stepBrush := func(delta int) {
		cur := sess.BrushSize()
		idx := 0
		for i, size := range brushSizes {
			if size <= cur {
				idx = i
			}
		}
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx >= len(brushSizes) {
			idx = len(brushSizes) - 1
		}
		sess.SetBrushSize(brushSizes[idx])
		repaint()
	}

	makeState := func() paintState {
		return paintState{
			width:          width,
			height:         height,
			img:            sess.Working(),
			zoom:           zoom,
			mode:           sess.Mode(),
			brushSize:      sess.BrushSize(),
			hasOriginal:    sess.HasOriginal(),
			canUndo:        sess.CanUndo(),
			canRedo:        sess.CanRedo(),
			cropRect:       sess.Crop().Rect(),
			hover:          hover,
			hoverInCanvas:  hoverInCanvas,
			cursorHint:     cursorHint,
			message:        message,
			messageUntil:   messageUntil,
			handleShortcut: handleShortcut,
		}
	}

	repaint()

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case quitEvent:
			cancelPaint()
			return
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				cancelPaint()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := makeState()
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				repaint()
				continue
			}
			p := image.Point{int(e.X), int(e.Y)}
			canvas := image.Rect(toolbarWidth, headerHeight, width, height-bottomHeight)
			base := canvasRect(sess.Working(), zoom)
			mx := int((float64(e.X) - float64(base.Min.X)) / zoom)
			my := int((float64(e.Y) - float64(base.Min.Y)) / zoom)

			if dragging && !p.In(canvas) {
				sess.PointerLeave(image.Pt(mx, my))
				dragging = false
				hoverInCanvas = false
				repaint()
				continue
			}

			if int(e.Y) >= height-bottomHeight {
				hoverInCanvas = false
				hoverShortcut = -1
				for i := range shortcutRects {
					sc := &shortcutRects[i]
					if p.In(sc.rect) {
						hoverShortcut = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							sc.Activate()
						}
						break
					}
				}
				if e.Direction == mouse.DirNone {
					repaint()
				}
				continue
			}
			if int(e.Y) < headerHeight {
				continue
			}

			if int(e.X) < toolbarWidth {
				hoverInCanvas = false
				hoverTool = -1
				hoverBrush = -1
				for i, btn := range toolButtons {
					if p.In(btn.Rect()) {
						hoverTool = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							btn.Activate()
						}
						break
					}
				}
				if hoverTool == -1 {
					for i, r := range brushRects {
						if p.In(r) {
							hoverBrush = i
							if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
								sess.SetBrushSize(brushSizes[i])
							}
							break
						}
					}
				}
				if e.Direction == mouse.DirNone || e.Direction == mouse.DirPress {
					repaint()
				}
				continue
			}

			hoverTool = -1
			hoverBrush = -1
			hoverShortcut = -1
			hover = p
			hoverInCanvas = image.Pt(mx, my).In(sess.Bounds())
			if sess.Mode() == editor.ModeCrop {
				kind, h := cropbox.Classify(image.Pt(mx, my), sess.Crop().Rect())
				cursorHint = string(cropbox.CursorFor(kind, h))
			}

			switch e.Direction {
			case mouse.DirPress:
				if e.Button == mouse.ButtonLeft {
					dragging = true
					sess.PointerDown(image.Pt(mx, my))
					repaint()
				}
			case mouse.DirRelease:
				if e.Button == mouse.ButtonLeft && dragging {
					dragging = false
					sess.PointerUp(image.Pt(mx, my))
					repaint()
				}
			case mouse.DirNone:
				if dragging {
					sess.PointerMove(image.Pt(mx, my))
				}
				repaint()
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if action, ok := keyboardAction[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}]; ok {
				handleShortcut(action)
				continue
			}
			if action, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]; ok && e.Code != key.CodeUnknown {
				handleShortcut(action)
				continue
			}
			switch e.Rune {
			case 'e', 'E':
				setMode(editor.ModeErase)
			case 'r', 'R':
				setMode(editor.ModeRestore)
			case 'c', 'C':
				setMode(editor.ModeCrop)
			case '[':
				stepBrush(-1)
			case ']':
				stepBrush(1)
			case '+', '=':
				zoom *= 1.25
				repaint()
			case '-':
				zoom /= 1.25
				if zoom < 0.1 {
					zoom = 0.1
				}
				repaint()
			case 'q', 'Q':
				cancelPaint()
				return
			}
		}
	}
}
