package pad

import (
	"image"

	"golang.org/x/image/draw"

	"SignaturePad/internal/ink"
	"SignaturePad/internal/logger"
	"SignaturePad/internal/state"
)

// Resize fits the surface into a width×height container, keeping the aspect
// ratio first observed. Existing ink is resampled into the new backing
// store. It reports whether the backing store changed: hidden containers and
// unchanged display sizes are no-ops.
func (p *Pad) Resize(width, height float64) bool {
	p.mu.Lock()
	applied := p.resizeLocked(state.Size{Width: width, Height: height}, false)
	p.mu.Unlock()

	if applied {
		p.changed()
	}
	return applied
}

// RequestResize is Resize behind the pad's throttle, for hosts that emit
// resize notifications continuously.
func (p *Pad) RequestResize(width, height float64) {
	p.resizes.Call(state.Size{Width: width, Height: height})
}

func (p *Pad) resizeLocked(container state.Size, force bool) bool {
	if container.Empty() {
		logger.L().Debug("resize skipped, container not measurable", "pad", p.id)
		return false
	}
	p.container = container
	if p.aspect == 0 {
		p.aspect = container.Height / container.Width
	}

	display := state.FitAspect(container, p.aspect)
	if !force && p.renderer != nil && display == p.geometry.Display() {
		return false
	}
	g := state.NewGeometry(display, p.cfg.ScaleFactor)
	if !g.Ready() {
		return false
	}

	if p.renderer == nil {
		p.renderer = ink.NewRenderer(g.BackingWidth, g.BackingHeight, p.cfg)
	} else {
		old := p.renderer
		p.renderer = ink.NewRendererForImage(resample(old.Image(), g, p.hasContent), p.cfg)
		p.renderer.Adopt(old,
			float64(g.BackingWidth)/float64(old.Width()),
			float64(g.BackingHeight)/float64(old.Height()))
		if err := old.Close(); err != nil {
			logger.L().Debug("closing old backing store", "pad", p.id, "error", err)
		}
	}
	p.geometry = g
	logger.L().Debug("surface resized", "pad", p.id,
		"display_w", g.DisplayWidth, "display_h", g.DisplayHeight,
		"backing_w", g.BackingWidth, "backing_h", g.BackingHeight)
	return true
}

// resample scales snapshot into a backing store of geometry g.
func resample(snapshot *image.RGBA, g state.Geometry, hasContent bool) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, g.BackingWidth, g.BackingHeight))
	if !hasContent {
		return dst
	}
	if snapshot.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), snapshot, snapshot.Bounds().Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), snapshot, snapshot.Bounds(), draw.Src, nil)
	return dst
}
