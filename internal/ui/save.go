package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2"

	"SignaturePad/internal/config"
	"SignaturePad/internal/export"
	"SignaturePad/internal/logger"
	"SignaturePad/internal/pad"
)

// ErrEmpty is returned when saving a pad with nothing drawn on it.
var ErrEmpty = errors.New("nothing to save")

// WriteSignature encodes p's signature in its configured format and writes
// the raw file bytes to w.
func WriteSignature(w io.Writer, p *pad.Pad) (config.Format, error) {
	img := p.Image()
	if img == nil || !p.HasContent() {
		return "", ErrEmpty
	}
	data, format, err := export.EncodeBytes(img, p.Config())
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("write %s: %w", format, err)
	}
	return format, nil
}

// ExportFile writes p's signature to path.
func ExportFile(path string, p *pad.Pad) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := WriteSignature(file, p); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// SaveToFile writes the signature through a writer obtained from a file
// dialog and reports the outcome on status.
func SaveToFile(writer fyne.URIWriteCloser, p *pad.Pad, status func(string)) {
	defer func() {
		if err := writer.Close(); err != nil {
			logger.L().Warn("closing save target", "uri", writer.URI().String(), "error", err)
		}
	}()

	format, err := WriteSignature(writer, p)
	if err != nil {
		logger.L().Warn("save failed", "uri", writer.URI().String(), "error", err)
		status("Save failed: " + err.Error())
		return
	}
	logger.L().Info("signature saved", "uri", writer.URI().String(), "format", format)
	status(fmt.Sprintf("Saved %s", writer.URI().Name()))
}
