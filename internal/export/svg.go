package export

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type svgDocument struct {
	XMLName xml.Name  `xml:"svg"`
	Xmlns   string    `xml:"xmlns,attr"`
	Width   int       `xml:"width,attr"`
	Height  int       `xml:"height,attr"`
	ViewBox string    `xml:"viewBox,attr"`
	Paths   []svgPath `xml:"path"`
}

type svgPath struct {
	D           string `xml:"d,attr"`
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr,omitempty"`
	FillRule    string `xml:"fill-rule,attr"`
	Stroke      string `xml:"stroke,attr"`
}

// encodeSVG traces img and writes every contour as a subpath of a single
// even-odd filled path, so hole contours cut out of the shape around them.
// The document declares the backing-store dimensions and references nothing
// external.
func encodeSVG(w io.Writer, img image.Image, ink color.NRGBA) error {
	b := img.Bounds()
	doc := svgDocument{
		Xmlns:   svgNamespace,
		Width:   b.Dx(),
		Height:  b.Dy(),
		ViewBox: fmt.Sprintf("0 0 %d %d", b.Dx(), b.Dy()),
	}
	fill := fmt.Sprintf("#%02x%02x%02x", ink.R, ink.G, ink.B)
	var opacity string
	if ink.A != 0xff {
		opacity = strconv.FormatFloat(float64(ink.A)/255, 'f', 3, 64)
	}
	if contours := (Tracer{}).Trace(img); len(contours) > 0 {
		doc.Paths = append(doc.Paths, svgPath{
			D:           pathData(contours),
			Fill:        fill,
			FillOpacity: opacity,
			FillRule:    "evenodd",
			Stroke:      "none",
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// pathData joins pixel centres into closed SVG subpaths, one per contour.
func pathData(contours []Contour) string {
	var sb strings.Builder
	for n, c := range contours {
		if n > 0 {
			sb.WriteByte(' ')
		}
		for i, p := range c {
			if i == 0 {
				sb.WriteString("M")
			} else {
				sb.WriteString(" L")
			}
			sb.WriteString(strconv.FormatFloat(float64(p.X)+0.5, 'f', -1, 64))
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(float64(p.Y)+0.5, 'f', -1, 64))
		}
		sb.WriteString(" Z")
	}
	return sb.String()
}
