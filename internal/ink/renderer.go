package ink

import (
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"SignaturePad/internal/config"
	"SignaturePad/internal/logger"
	"SignaturePad/internal/state"
)

// Renderer draws strokes incrementally into a backing store. Points are in
// backing pixels; thicknesses are in display pixels and scaled by the
// configured scale factor when drawn.
type Renderer struct {
	dc     *gg.Context
	cfg    config.Config
	points []state.Point
	endX   float64
	endY   float64
}

// NewRenderer creates a renderer with a transparent width×height backing
// store.
func NewRenderer(width, height int, cfg config.Config) *Renderer {
	r := &Renderer{dc: gg.NewContext(width, height), cfg: cfg.Sanitize()}
	r.ApplyStyle()
	return r
}

// NewRendererForImage creates a renderer whose backing store starts as a
// copy of img.
func NewRendererForImage(img image.Image, cfg config.Config) *Renderer {
	r := &Renderer{dc: gg.NewContextForImage(img), cfg: cfg.Sanitize()}
	r.ApplyStyle()
	return r
}

// ApplyStyle pushes the configured color, width, join and cap into the
// drawing context. A fresh context starts with default paint, so this runs
// after every reallocation.
func (r *Renderer) ApplyStyle() {
	r.dc.SetColor(r.cfg.Color())
	r.dc.SetLineWidth(r.cfg.LineThickness * r.cfg.ScaleFactor)
	r.dc.SetLineJoin(lineJoin(r.cfg.LineJoin))
	r.dc.SetLineCap(lineCap(r.cfg.LineCap))
}

// SetConfig replaces the configuration and reapplies the draw state.
func (r *Renderer) SetConfig(cfg config.Config) {
	r.cfg = cfg.Sanitize()
	r.ApplyStyle()
}

// Begin starts a stroke at p with a filled dot of diameter p.Thickness.
func (r *Renderer) Begin(p state.Point) {
	r.points = append(r.points[:0], p)
	r.endX, r.endY = p.X, p.Y

	r.dc.DrawCircle(p.X, p.Y, p.Thickness/2*r.cfg.ScaleFactor)
	if err := r.dc.Fill(); err != nil {
		logger.L().Debug("dot fill failed", "error", err)
	}
}

// Extend appends p to the stroke and draws the new piece with p's thickness.
// From the third point on, the piece is a quadratic curve through the
// previous point ending halfway to p; before that it is a straight segment.
func (r *Renderer) Extend(p state.Point) {
	if len(r.points) == 0 {
		r.Begin(p)
		return
	}
	r.points = append(r.points, p)
	n := len(r.points)

	r.dc.SetLineWidth(p.Thickness * r.cfg.ScaleFactor)
	r.dc.MoveTo(r.endX, r.endY)
	if n >= 3 {
		ctrl := r.points[n-2]
		mx, my := (ctrl.X+p.X)/2, (ctrl.Y+p.Y)/2
		r.dc.QuadraticTo(ctrl.X, ctrl.Y, mx, my)
		r.endX, r.endY = mx, my
	} else {
		r.dc.LineTo(p.X, p.Y)
		r.endX, r.endY = p.X, p.Y
	}
	r.stroke()
}

// End draws the remaining tail from the last curve end to the final point.
func (r *Renderer) End() {
	n := len(r.points)
	if n < 3 {
		return
	}
	last := r.points[n-1]
	if last.X == r.endX && last.Y == r.endY {
		return
	}
	r.dc.SetLineWidth(last.Thickness * r.cfg.ScaleFactor)
	r.dc.MoveTo(r.endX, r.endY)
	r.dc.LineTo(last.X, last.Y)
	r.endX, r.endY = last.X, last.Y
	r.stroke()
}

func (r *Renderer) stroke() {
	if err := r.dc.Stroke(); err != nil {
		logger.L().Debug("stroke failed", "error", err)
	}
}

// Points returns a copy of the current stroke's points.
func (r *Renderer) Points() []state.Point {
	out := make([]state.Point, len(r.points))
	copy(out, r.points)
	return out
}

// Adopt continues old's stroke on r. Points and the last curve end are
// scaled by sx, sy into r's backing store so a stroke survives reallocation.
func (r *Renderer) Adopt(old *Renderer, sx, sy float64) {
	r.points = r.points[:0]
	for _, p := range old.points {
		r.points = append(r.points, state.Point{X: p.X * sx, Y: p.Y * sy, Thickness: p.Thickness})
	}
	r.endX, r.endY = old.endX*sx, old.endY*sy
}

// Clear erases the backing store and forgets the current stroke.
func (r *Renderer) Clear() {
	r.dc.Clear()
	r.dc.ClearPath()
	r.points = r.points[:0]
}

// Image returns a copy of the backing store.
func (r *Renderer) Image() *image.RGBA {
	img := r.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// Width returns the backing store width in pixels.
func (r *Renderer) Width() int { return r.dc.Width() }

// Height returns the backing store height in pixels.
func (r *Renderer) Height() int { return r.dc.Height() }

// Close releases the drawing context.
func (r *Renderer) Close() error {
	return r.dc.Close()
}

func lineJoin(j config.Join) gg.LineJoin {
	switch j {
	case config.JoinBevel:
		return gg.LineJoinBevel
	case config.JoinMiter:
		return gg.LineJoinMiter
	default:
		return gg.LineJoinRound
	}
}

func lineCap(c config.Cap) gg.LineCap {
	switch c {
	case config.CapButt:
		return gg.LineCapButt
	case config.CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapRound
	}
}
