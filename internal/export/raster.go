package export

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// JPEGQuality is the quality used for JPEG export.
const JPEGQuality = 92

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// JPEG has no alpha channel, so the transparent backing store is composited
// onto white first.
func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, Flatten(img), &jpeg.Options{Quality: JPEGQuality})
}

// Flatten composites img over an opaque white background. The result's
// bounds start at the origin.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
