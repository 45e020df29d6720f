package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/colornames"

	"SignaturePad/internal/config"
)

// Ink colours offered by the palette, by CSS name.
var inkColors = []string{"black", "navy", "darkblue", "darkgreen", "darkred"}

type colorSwatch struct {
	widget.BaseWidget
	Name     string
	OnTapped func(string)
}

func newColorSwatch(name string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Name: name, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(colornames.Map[s.Name])
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// Toolbar holds the pad controls. Every control replaces the pad's
// configuration wholesale through Reconfigure.
type Toolbar struct {
	pad    *PadWidget
	win    fyne.Window
	status *widget.Label

	formats *widget.Select
	width   *widget.Slider
}

// NewToolbar builds the controls for w. win parents the save dialog and may
// be nil when saving is not offered.
func NewToolbar(w *PadWidget, win fyne.Window) *Toolbar {
	t := &Toolbar{pad: w, win: win, status: widget.NewLabel("Ready")}
	cfg := w.Pad.Config()

	names := make([]string, len(config.Formats))
	for i, f := range config.Formats {
		names[i] = string(f)
	}
	t.formats = widget.NewSelect(names, func(s string) {
		t.update(func(c *config.Config) { c.ExportFormat = config.ParseFormat(s) })
	})
	t.formats.SetSelected(string(cfg.ExportFormat))

	t.width = widget.NewSlider(1, 12)
	t.width.Step = 0.5
	t.width.SetValue(cfg.LineThickness)
	t.width.OnChangeEnded = t.SetThickness

	return t
}

func (t *Toolbar) update(change func(*config.Config)) {
	cfg := t.pad.Pad.Config()
	change(&cfg)
	t.pad.Pad.Reconfigure(cfg)
}

// SetColor switches the ink colour.
func (t *Toolbar) SetColor(name string) {
	t.update(func(c *config.Config) { c.LineColor = name })
	t.status.SetText("Ink: " + name)
}

// SetThickness sets the nominal stroke width; fast strokes thin down to a
// third of it.
func (t *Toolbar) SetThickness(v float64) {
	t.update(func(c *config.Config) {
		c.LineThickness = v
		c.MaxThickness = v
		c.MinThickness = v / 3
	})
}

// SetStatus shows text in the status label.
func (t *Toolbar) SetStatus(text string) {
	fyne.Do(func() { t.status.SetText(text) })
}

// Clear erases the pad.
func (t *Toolbar) Clear() {
	t.pad.Clear()
	t.status.SetText("Cleared")
}

// Save asks for a destination and writes the signature there.
func (t *Toolbar) Save() {
	if t.win == nil {
		return
	}
	if !t.pad.Pad.HasContent() {
		t.status.SetText("Nothing to save")
		return
	}
	format := t.pad.Pad.Config().ExportFormat
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.win)
			return
		}
		if writer == nil {
			return
		}
		SaveToFile(writer, t.pad.Pad, t.SetStatus)
	}, t.win)
	d.SetFileName("signature." + format.Extension())
	d.SetFilter(storage.NewExtensionFileFilter([]string{"." + format.Extension()}))
	d.Show()
}

// Object lays the controls out in a row.
func (t *Toolbar) Object() fyne.CanvasObject {
	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), t.Clear),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.Save),
	)

	palette := container.NewHBox()
	for _, name := range inkColors {
		palette.Add(newColorSwatch(name, t.SetColor))
	}
	slider := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.width)

	return container.NewHBox(
		actions,
		widget.NewSeparator(),
		widget.NewLabel("Ink:"),
		palette,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		slider,
		widget.NewSeparator(),
		widget.NewLabel("Format:"),
		t.formats,
		layout.NewSpacer(),
		t.status,
	)
}
