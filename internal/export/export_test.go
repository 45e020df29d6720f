package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignaturePad/internal/config"
)

// square returns a transparent w×h image with an opaque black rectangle.
func square(w, h int, r image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 0xff})
		}
	}
	return img
}

func withFormat(f config.Format) config.Config {
	c := config.Default()
	c.ExportFormat = f
	return c
}

func TestEncodePNGKeepsBackingDimensions(t *testing.T) {
	img := square(64, 32, image.Rect(10, 10, 20, 20))
	url, err := Encode(img, withFormat(config.FormatPNG))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	mediaType, data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), decoded.Bounds())
	_, _, _, a := decoded.At(0, 0).RGBA()
	assert.Zero(t, a, "png keeps the transparent background")
}

func TestEncodeJPEGIsOpaqueOnWhite(t *testing.T) {
	img := square(40, 30, image.Rect(0, 0, 10, 10))
	data, format, err := EncodeBytes(img, withFormat("jpg"))
	require.NoError(t, err)
	assert.Equal(t, config.FormatJPEG, format)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), decoded.Bounds())

	r, g, b, _ := decoded.At(35, 25).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
	r, _, _, _ = decoded.At(4, 4).RGBA()
	assert.Less(t, r>>8, uint32(40))
}

func TestEncodeUnknownFormatFallsBackToPNG(t *testing.T) {
	url, err := Encode(square(8, 8, image.Rectangle{}), withFormat("tiff"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestEncodeSVGIsWellFormed(t *testing.T) {
	img := square(50, 20, image.Rect(5, 5, 15, 15))
	data, format, err := EncodeBytes(img, withFormat(config.FormatSVG))
	require.NoError(t, err)
	assert.Equal(t, config.FormatSVG, format)

	var doc svgDocument
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, 50, doc.Width)
	assert.Equal(t, 20, doc.Height)
	assert.Equal(t, "0 0 50 20", doc.ViewBox)
	assert.Equal(t, svgNamespace, doc.Xmlns)
	require.Len(t, doc.Paths, 1)
	assert.Equal(t, "#000000", doc.Paths[0].Fill)
	assert.Equal(t, "none", doc.Paths[0].Stroke)
	assert.True(t, strings.HasPrefix(doc.Paths[0].D, "M5.5 5.5 L"))
	assert.True(t, strings.HasSuffix(doc.Paths[0].D, " Z"))
	assert.NotContains(t, string(data), "href", "document is self-contained")
}

func TestEncodeSVGUsesLineColour(t *testing.T) {
	cfg := withFormat(config.FormatSVG)
	cfg.LineColor = "#00008080"
	data, _, err := EncodeBytes(square(20, 20, image.Rect(2, 2, 12, 12)), cfg)
	require.NoError(t, err)

	var doc svgDocument
	require.NoError(t, xml.Unmarshal(data, &doc))
	require.NotEmpty(t, doc.Paths)
	assert.Equal(t, "#000080", doc.Paths[0].Fill)
	assert.Equal(t, "0.502", doc.Paths[0].FillOpacity)
}

// parseSubpaths reads the "M x y L x y ... Z" data written by pathData.
func parseSubpaths(t *testing.T, d string) [][][2]float64 {
	t.Helper()
	var out [][][2]float64
	for _, sub := range strings.Split(d, "M")[1:] {
		sub = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sub), "Z"))
		var poly [][2]float64
		for _, pair := range strings.Split(sub, " L") {
			var x, y float64
			_, err := fmt.Sscanf(strings.TrimSpace(pair), "%g %g", &x, &y)
			require.NoError(t, err)
			poly = append(poly, [2]float64{x, y})
		}
		out = append(out, poly)
	}
	return out
}

// evenOdd reports whether (x, y) is filled under the even-odd rule.
func evenOdd(subpaths [][][2]float64, x, y float64) bool {
	inside := false
	for _, poly := range subpaths {
		for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
			a, b := poly[i], poly[j]
			if (a[1] > y) != (b[1] > y) && x < (b[0]-a[0])*(y-a[1])/(b[1]-a[1])+a[0] {
				inside = !inside
			}
		}
	}
	return inside
}

func TestEncodeSVGCutsHoles(t *testing.T) {
	img := square(12, 12, image.Rect(1, 1, 11, 11))
	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{})
		}
	}
	data, _, err := EncodeBytes(img, withFormat(config.FormatSVG))
	require.NoError(t, err)

	var doc svgDocument
	require.NoError(t, xml.Unmarshal(data, &doc))
	require.Len(t, doc.Paths, 1, "outer and inner boundary share one path")
	assert.Equal(t, "evenodd", doc.Paths[0].FillRule)

	subpaths := parseSubpaths(t, doc.Paths[0].D)
	require.Len(t, subpaths, 2)
	assert.Equal(t, [2]float64{8.5, 4.5}, subpaths[1][0])
	assert.True(t, evenOdd(subpaths, 2.5, 6), "ring band is filled")
	assert.False(t, evenOdd(subpaths, 6, 6), "hole stays open")
}

func TestEncodeSVGEmptyCanvas(t *testing.T) {
	data, _, err := EncodeBytes(image.NewRGBA(image.Rect(0, 0, 30, 10)), withFormat(config.FormatSVG))
	require.NoError(t, err)

	var doc svgDocument
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Empty(t, doc.Paths)
	assert.Equal(t, 30, doc.Width)
}

func TestEncodePDF(t *testing.T) {
	data, format, err := EncodeBytes(square(60, 40, image.Rect(10, 10, 30, 30)), withFormat(config.FormatPDF))
	require.NoError(t, err)
	assert.Equal(t, config.FormatPDF, format)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "%%EOF")
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "image/png;base64,AAAA", "data:image/png,AAAA", "data:image/png;base64", "data:image/png;base64,!!"} {
		_, _, err := DecodeDataURL(s)
		assert.ErrorIs(t, err, ErrNotDataURL, s)
	}
}

func TestFormatForMediaType(t *testing.T) {
	f, ok := FormatForMediaType("image/svg+xml")
	assert.True(t, ok)
	assert.Equal(t, config.FormatSVG, f)
	_, ok = FormatForMediaType("text/plain")
	assert.False(t, ok)
}

func TestFlattenCompositesOntoWhite(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 14))
	img.SetRGBA(10, 10, color.RGBA{A: 0xff})
	flat := Flatten(img)
	assert.Equal(t, image.Rect(0, 0, 4, 4), flat.Bounds())
	assert.Equal(t, color.RGBA{A: 0xff}, flat.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, flat.RGBAAt(3, 3))
}
