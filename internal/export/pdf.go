package export

import (
	"image"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// encodePDF writes a single-page PDF the size of the backing store (one point
// per pixel) with the traced contours as subpaths of one even-odd filled path.
func encodePDF(w io.Writer, img image.Image, ink color.NRGBA) error {
	b := img.Bounds()
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(b.Dx()), Ht: float64(b.Dy())},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("SignaturePad", true)
	p.AddPage()
	p.SetFillColor(int(ink.R), int(ink.G), int(ink.B))
	if ink.A != 0xff {
		p.SetAlpha(float64(ink.A)/255, "Normal")
	}

	// One path with a subpath per contour: "f*" then cuts holes out.
	contours := (Tracer{}).Trace(img)
	for _, c := range contours {
		for i, pt := range c {
			x, y := float64(pt.X)+0.5, float64(pt.Y)+0.5
			if i == 0 {
				p.MoveTo(x, y)
			} else {
				p.LineTo(x, y)
			}
		}
		p.ClosePath()
	}
	if len(contours) > 0 {
		p.DrawPath("f*")
	}
	if err := p.Error(); err != nil {
		return err
	}
	return p.Output(w)
}
