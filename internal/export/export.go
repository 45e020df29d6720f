// Package export encodes a pad's backing store as a self-contained data URL:
// PNG or JPEG raster, or an SVG/PDF silhouette traced from the raster.
package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"SignaturePad/internal/config"
	"SignaturePad/internal/logger"
)

// Encode renders img in the configured export format and wraps it in a data
// URL. Unknown formats fall back to PNG.
func Encode(img image.Image, cfg config.Config) (string, error) {
	data, format, err := EncodeBytes(img, cfg)
	if err != nil {
		return "", err
	}
	return DataURL(format, data), nil
}

// EncodeBytes renders img and returns the raw file bytes with the format
// actually used.
func EncodeBytes(img image.Image, cfg config.Config) ([]byte, config.Format, error) {
	format := config.ParseFormat(string(cfg.ExportFormat))
	var buf bytes.Buffer
	var err error
	switch format {
	case config.FormatJPEG:
		err = encodeJPEG(&buf, img)
	case config.FormatSVG:
		err = encodeSVG(&buf, img, cfg.Color())
	case config.FormatPDF:
		err = encodePDF(&buf, img, cfg.Color())
	default:
		err = encodePNG(&buf, img)
	}
	if err != nil {
		return nil, format, fmt.Errorf("encode %s: %w", format, err)
	}
	b := img.Bounds()
	logger.L().Debug("image encoded", "format", format, "width", b.Dx(), "height", b.Dy(), "bytes", buf.Len())
	return buf.Bytes(), format, nil
}

// DataURL wraps data as a base64 data URL of the given format.
func DataURL(format config.Format, data []byte) string {
	return "data:" + format.MediaType() + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ErrNotDataURL is returned by DecodeDataURL for malformed input.
var ErrNotDataURL = errors.New("not a base64 data URL")

// DecodeDataURL splits a data URL produced by DataURL back into its media
// type and payload.
func DecodeDataURL(s string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mediaType, ok = strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNotDataURL, err)
	}
	return mediaType, data, nil
}

// FormatForMediaType maps a media type back to its export format.
func FormatForMediaType(mediaType string) (config.Format, bool) {
	for _, f := range config.Formats {
		if f.MediaType() == mediaType {
			return f, true
		}
	}
	return "", false
}
