package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SignaturePad/internal/pad"
	"SignaturePad/internal/state"
)

// Pointer ids reported for the mouse buttons. Touch drags use the primary id.
const (
	primaryPointer   = 1
	secondaryPointer = 2
	tertiaryPointer  = 3
)

// PadWidget is the drawable surface: it forwards mouse and touch input to a
// pad.Pad and displays its backing store.
type PadWidget struct {
	widget.BaseWidget

	Pad *pad.Pad

	mu      sync.Mutex
	start   time.Time
	pressed map[int]bool
	last    fyne.Position
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ fyne.Scrollable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)
var _ desktop.Hoverable = (*PadWidget)(nil)

// NewPadWidget wraps a new pad built from opts. With a registry the pad is
// registered there; otherwise it stands alone. The widget supplies the pad's
// origin, dispatcher and change callback.
func NewPadWidget(reg *pad.Registry, opts pad.Options) (*PadWidget, error) {
	w := &PadWidget{start: time.Now(), pressed: make(map[int]bool)}
	opts.Origin = w.origin
	opts.Dispatch = fyne.Do
	opts.OnChange = w.Refresh

	if reg == nil {
		w.Pad = pad.New(opts)
	} else {
		p, err := reg.Add(opts)
		if err != nil {
			return nil, err
		}
		w.Pad = p
	}
	w.ExtendBaseWidget(w)
	return w, nil
}

func (w *PadWidget) origin() (x, y float64) {
	a := fyne.CurrentApp()
	if a == nil {
		return 0, 0
	}
	pos := a.Driver().AbsolutePositionForObject(w)
	return float64(pos.X), float64(pos.Y)
}

func (w *PadWidget) now() float64 {
	return float64(time.Since(w.start).Microseconds()) / 1000
}

func (w *PadWidget) send(kind state.EventKind, id int, pos fyne.Position) {
	w.Pad.HandleEvent(state.PointerEvent{
		Kind:        kind,
		PointerID:   id,
		ClientX:     float64(pos.X),
		ClientY:     float64(pos.Y),
		TimestampMs: w.now(),
	})
}

func buttonPointer(b desktop.MouseButton) int {
	switch b {
	case desktop.MouseButtonSecondary:
		return secondaryPointer
	case desktop.MouseButtonTertiary:
		return tertiaryPointer
	default:
		return primaryPointer
	}
}

func (w *PadWidget) MouseDown(e *desktop.MouseEvent) {
	id := buttonPointer(e.Button)
	w.mu.Lock()
	w.pressed[id] = true
	w.last = e.AbsolutePosition
	w.mu.Unlock()
	w.send(state.PointerDown, id, e.AbsolutePosition)
}

func (w *PadWidget) MouseUp(e *desktop.MouseEvent) {
	id := buttonPointer(e.Button)
	w.mu.Lock()
	was := w.pressed[id]
	delete(w.pressed, id)
	w.mu.Unlock()
	if was {
		w.send(state.PointerUp, id, e.AbsolutePosition)
	}
}

// Dragged moves the primary pointer. Touch input arrives as drags only, so
// a drag with no button down starts the stroke.
func (w *PadWidget) Dragged(e *fyne.DragEvent) {
	w.mu.Lock()
	down := w.pressed[primaryPointer]
	w.pressed[primaryPointer] = true
	w.last = e.AbsolutePosition
	w.mu.Unlock()
	if !down {
		w.send(state.PointerDown, primaryPointer, e.AbsolutePosition)
		return
	}
	w.send(state.PointerMove, primaryPointer, e.AbsolutePosition)
}

func (w *PadWidget) DragEnd() {
	w.mu.Lock()
	was := w.pressed[primaryPointer]
	delete(w.pressed, primaryPointer)
	pos := w.last
	w.mu.Unlock()
	if was {
		w.send(state.PointerUp, primaryPointer, pos)
	}
}

func (w *PadWidget) MouseIn(*desktop.MouseEvent) {}

func (w *PadWidget) MouseMoved(e *desktop.MouseEvent) {
	w.mu.Lock()
	down := w.pressed[primaryPointer]
	w.last = e.AbsolutePosition
	w.mu.Unlock()
	if down {
		w.send(state.PointerMove, primaryPointer, e.AbsolutePosition)
	}
}

// MouseOut ends every stroke in progress.
func (w *PadWidget) MouseOut() {
	w.mu.Lock()
	ids := make([]int, 0, len(w.pressed))
	for id := range w.pressed {
		ids = append(ids, id)
	}
	clear(w.pressed)
	pos := w.last
	w.mu.Unlock()
	for _, id := range ids {
		w.send(state.PointerLeave, id, pos)
	}
}

// Scrolled swallows scroll gestures so they never pan the surface.
func (w *PadWidget) Scrolled(*fyne.ScrollEvent) {}

// Clear erases the signature.
func (w *PadWidget) Clear() {
	w.Pad.Clear()
}

func (w *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &padWidgetRenderer{pad: w}
	r.background = canvas.NewRectangle(color.White)
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeColor = color.Gray{Y: 150}
	r.border.StrokeWidth = 1
	r.raster = canvas.NewRaster(func(int, int) image.Image {
		if img := w.Pad.Image(); img != nil {
			return img
		}
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	})
	r.raster.ScaleMode = canvas.ImageScaleSmooth
	return r
}

type padWidgetRenderer struct {
	pad        *PadWidget
	background *canvas.Rectangle
	border     *canvas.Rectangle
	raster     *canvas.Raster
}

func (r *padWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.raster, r.border}
}

// Layout asks the pad to fit the new size, then sizes the ink layer to the
// surface the pad settled on.
func (r *padWidgetRenderer) Layout(size fyne.Size) {
	r.pad.Pad.RequestResize(float64(size.Width), float64(size.Height))
	r.place()
}

func (r *padWidgetRenderer) place() {
	g := r.pad.Pad.Geometry()
	s := fyne.NewSize(float32(g.DisplayWidth), float32(g.DisplayHeight))
	r.background.Resize(s)
	r.raster.Resize(s)
	r.border.Resize(s)
}

func (r *padWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 150)
}

func (r *padWidgetRenderer) Refresh() {
	r.place()
	r.raster.Refresh()
}

func (r *padWidgetRenderer) Destroy() {}
