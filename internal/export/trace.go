package export

import (
	"image"

	"SignaturePad/internal/logger"
)

// DefaultThreshold is the red-channel level below which a pixel counts as
// ink. Only the red channel is read, which is a rough stand-in for
// luminance: coloured or faint anti-aliased ink can be missed.
const DefaultThreshold = 128

// Contour is a closed boundary of foreground pixels in walk order.
type Contour []image.Point

// Tracer vectorizes a raster by Moore-neighbour boundary following. The result
// is a silhouette of the ink, not the original stroke paths.
type Tracer struct {
	// Threshold is the red level separating ink from paper.
	// Zero means DefaultThreshold.
	Threshold uint8
	// MaxSteps caps each walk. Zero means four steps per pixel, at least 1024.
	MaxSteps int
}

// neighbours in clockwise order (y grows downward), starting west.
var neighbours = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

func direction(d image.Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return 0
}

type mask struct {
	w, h int
	ink  []bool
}

func (m *mask) at(p image.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= m.w || p.Y >= m.h {
		return false
	}
	return m.ink[p.Y*m.w+p.X]
}

// Trace returns every boundary found in img. A walk starts at each ink pixel
// whose left neighbour is paper and which no earlier contour passed through.
// Contours of fewer than three pixels are dropped.
func (t Tracer) Trace(img image.Image) []Contour {
	flat := Flatten(img)
	w, h := flat.Rect.Dx(), flat.Rect.Dy()
	threshold := t.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	maxSteps := t.MaxSteps
	if maxSteps <= 0 {
		maxSteps = max(1024, 4*w*h)
	}

	m := &mask{w: w, h: h, ink: make([]bool, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.ink[y*w+x] = flat.Pix[flat.PixOffset(x, y)] < threshold
		}
	}

	visited := make([]bool, w*h)
	var contours []Contour
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := image.Point{X: x, Y: y}
			if !m.ink[y*w+x] || visited[y*w+x] || m.at(image.Point{X: x - 1, Y: y}) {
				continue
			}
			c, complete := walk(m, start, maxSteps)
			for _, p := range c {
				visited[p.Y*w+p.X] = true
			}
			if !complete {
				logger.L().Warn("contour walk truncated", "x", x, "y", y, "steps", maxSteps)
			}
			if len(c) >= 3 {
				contours = append(contours, c)
			}
		}
	}
	return contours
}

// walk follows the boundary clockwise from start, entering from the west.
// It reports false when the step cap cut the walk short.
func walk(m *mask, start image.Point, maxSteps int) (Contour, bool) {
	contour := Contour{start}
	cur := start
	back := start.Add(neighbours[0])
	for step := 0; step < maxSteps; step++ {
		from := direction(back.Sub(cur))
		found := false
		for i := 1; i <= 8; i++ {
			k := (from + i) % 8
			next := cur.Add(neighbours[k])
			if m.at(next) {
				back = cur.Add(neighbours[(k+7)%8])
				cur = next
				found = true
				break
			}
		}
		if !found || cur == start {
			return contour, true
		}
		contour = append(contour, cur)
	}
	return contour, false
}
