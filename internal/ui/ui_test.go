package ui

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignaturePad/internal/config"
	"SignaturePad/internal/pad"
	"SignaturePad/internal/state"
)

func newTestWidget(t *testing.T) (*PadWidget, *state.FieldStore) {
	t.Helper()
	test.NewTempApp(t)
	store := state.NewFieldStore()
	w, err := NewPadWidget(nil, pad.Options{ID: "ui", Sink: store})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Pad.Close() })

	test.WidgetRenderer(w)
	w.Resize(fyne.NewSize(300, 150))
	require.True(t, w.Pad.Ready())
	return w, store
}

func mouse(x, y float32, b desktop.MouseButton) *desktop.MouseEvent {
	pos := fyne.NewPos(x, y)
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos, AbsolutePosition: pos}, Button: b}
}

func drag(x, y float32) *fyne.DragEvent {
	pos := fyne.NewPos(x, y)
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: pos, AbsolutePosition: pos}}
}

func TestPadWidgetLayoutSizesSurface(t *testing.T) {
	w, _ := newTestWidget(t)
	g := w.Pad.Geometry()
	assert.Equal(t, 300.0, g.DisplayWidth)
	assert.Equal(t, 150.0, g.DisplayHeight)
	assert.Equal(t, 600, g.BackingWidth)
}

func TestPadWidgetMouseStroke(t *testing.T) {
	w, store := newTestWidget(t)

	w.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	w.MouseMoved(mouse(60, 20, desktop.MouseButtonPrimary))
	w.MouseMoved(mouse(90, 40, desktop.MouseButtonPrimary))
	w.MouseUp(mouse(90, 40, desktop.MouseButtonPrimary))

	assert.True(t, w.Pad.HasContent())
	assert.False(t, w.Pad.Active())
	assert.Len(t, w.Pad.Points(), 3)
	value, _ := store.Value(w.Pad.Field())
	assert.Contains(t, value, "data:image/png;base64,")
}

func TestPadWidgetSecondaryButtonDoesNotDraw(t *testing.T) {
	w, _ := newTestWidget(t)

	w.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	w.MouseDown(mouse(50, 50, desktop.MouseButtonSecondary))
	assert.Equal(t, 1, w.Pad.SecondaryPointers())
	w.MouseUp(mouse(50, 50, desktop.MouseButtonSecondary))
	assert.Equal(t, 0, w.Pad.SecondaryPointers())
	assert.True(t, w.Pad.Active())
	assert.Len(t, w.Pad.Points(), 1)
}

func TestPadWidgetTouchDrag(t *testing.T) {
	w, store := newTestWidget(t)

	w.Dragged(drag(20, 20))
	assert.True(t, w.Pad.Active())
	w.Dragged(drag(40, 30))
	w.Dragged(drag(70, 30))
	w.DragEnd()

	assert.False(t, w.Pad.Active())
	assert.Len(t, w.Pad.Points(), 3)
	value, _ := store.Value(w.Pad.Field())
	assert.NotEmpty(t, value)
}

func TestPadWidgetMouseOutEndsStroke(t *testing.T) {
	w, store := newTestWidget(t)

	w.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	w.MouseMoved(mouse(299, 20, desktop.MouseButtonPrimary))
	w.MouseOut()
	assert.False(t, w.Pad.Active())
	value, _ := store.Value(w.Pad.Field())
	assert.NotEmpty(t, value)

	w.MouseMoved(mouse(100, 100, desktop.MouseButtonPrimary))
	assert.Len(t, w.Pad.Points(), 2, "hover after leaving does not draw")
}

func TestPadWidgetScrollIsSwallowed(t *testing.T) {
	w, _ := newTestWidget(t)
	before := w.Pad.Geometry()
	w.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 40)})
	assert.Equal(t, before, w.Pad.Geometry())
	assert.False(t, w.Pad.HasContent())
}

func TestWriteSignature(t *testing.T) {
	w, _ := newTestWidget(t)

	var buf bytes.Buffer
	_, err := WriteSignature(&buf, w.Pad)
	assert.ErrorIs(t, err, ErrEmpty)

	w.MouseDown(mouse(30, 30, desktop.MouseButtonPrimary))
	w.MouseUp(mouse(30, 30, desktop.MouseButtonPrimary))

	format, err := WriteSignature(&buf, w.Pad)
	require.NoError(t, err)
	assert.Equal(t, config.FormatPNG, format)
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
}

func TestExportFile(t *testing.T) {
	w, _ := newTestWidget(t)
	path := filepath.Join(t.TempDir(), "sig.png")
	assert.ErrorIs(t, ExportFile(path, w.Pad), ErrEmpty)
	assert.NoFileExists(t, path)

	w.MouseDown(mouse(30, 30, desktop.MouseButtonPrimary))
	w.MouseUp(mouse(30, 30, desktop.MouseButtonPrimary))
	require.NoError(t, ExportFile(path, w.Pad))
	assert.FileExists(t, path)
}

func TestToolbarReconfigures(t *testing.T) {
	w, _ := newTestWidget(t)
	tb := NewToolbar(w, nil)
	require.NotNil(t, tb.Object())

	tb.SetColor("navy")
	assert.Equal(t, "navy", w.Pad.Config().LineColor)

	tb.SetThickness(6)
	cfg := w.Pad.Config()
	assert.Equal(t, 6.0, cfg.LineThickness)
	assert.Equal(t, 6.0, cfg.MaxThickness)
	assert.Equal(t, 2.0, cfg.MinThickness)

	tb.formats.SetSelected("svg")
	assert.Equal(t, config.FormatSVG, w.Pad.Config().ExportFormat)

	w.MouseDown(mouse(30, 30, desktop.MouseButtonPrimary))
	tb.Clear()
	assert.False(t, w.Pad.HasContent())
	assert.Equal(t, "Cleared", tb.status.Text)

	tb.Save()
}
