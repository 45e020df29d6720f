package state

import "math"

// Size is a width and height in display pixels.
type Size struct {
	Width  float64
	Height float64
}

// Empty reports whether the size cannot host a drawing surface. Hidden
// elements measure as zero.
func (s Size) Empty() bool {
	return !(s.Width > 0 && s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0)
}

// Geometry describes a surface: its displayed size and the size of the
// pixel buffer behind it.
type Geometry struct {
	DisplayWidth  float64
	DisplayHeight float64
	BackingWidth  int
	BackingHeight int
}

// NewGeometry derives the backing size from a display size and scale factor.
func NewGeometry(display Size, scale float64) Geometry {
	return Geometry{
		DisplayWidth:  display.Width,
		DisplayHeight: display.Height,
		BackingWidth:  int(math.Round(display.Width * scale)),
		BackingHeight: int(math.Round(display.Height * scale)),
	}
}

// Display returns the display size.
func (g Geometry) Display() Size {
	return Size{Width: g.DisplayWidth, Height: g.DisplayHeight}
}

// Ready reports whether the geometry has a drawable backing store.
func (g Geometry) Ready() bool {
	return g.BackingWidth > 0 && g.BackingHeight > 0
}

// ScaleX returns backing pixels per display pixel horizontally.
func (g Geometry) ScaleX() float64 {
	if g.DisplayWidth <= 0 {
		return 1
	}
	return float64(g.BackingWidth) / g.DisplayWidth
}

// ScaleY returns backing pixels per display pixel vertically.
func (g Geometry) ScaleY() float64 {
	if g.DisplayHeight <= 0 {
		return 1
	}
	return float64(g.BackingHeight) / g.DisplayHeight
}

// FitAspect returns the largest size with the given aspect ratio
// (height / width) that fits in container: full width first, then shrunk
// to the container height if it overflows.
func FitAspect(container Size, aspect float64) Size {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return container
	}
	w := container.Width
	h := w * aspect
	if h > container.Height {
		h = container.Height
		w = h / aspect
	}
	return Size{Width: w, Height: h}
}
