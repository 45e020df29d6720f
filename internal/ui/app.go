package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"SignaturePad/internal/logger"
	"SignaturePad/internal/pad"
	"SignaturePad/internal/state"
)

// RunApp opens a window with one signature pad and blocks until it closes.
// Committed signatures are published to sink.
func RunApp(opts pad.Options, sink state.Sink) error {
	myApp := app.NewWithID("io.signaturepad")
	myWindow := myApp.NewWindow("Signature Pad")
	myWindow.Resize(fyne.NewSize(720, 360))

	registry := pad.NewRegistry(sink)
	defer registry.Close()

	surface, err := NewPadWidget(registry, opts)
	if err != nil {
		return err
	}
	logger.L().Info("pad ready", "pad", surface.Pad.ID(), "field", surface.Pad.Field())

	toolbar := NewToolbar(surface, myWindow)
	content := container.NewBorder(toolbar.Object(), nil, nil, nil, surface)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
	return nil
}
