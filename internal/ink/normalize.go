// Package ink turns pointer samples into variable-width strokes: it maps
// client coordinates into the backing store, estimates thickness from
// pointer speed and rasterizes smoothed curves.
package ink

import "SignaturePad/internal/state"

// Normalizer converts client-space pointer events into backing-store samples.
// Origin, when set, reports the surface's top-left corner in client space; it
// is queried on every event because the surface may move under scrolling.
//
// Coordinates are not clamped. A stroke that leaves the surface keeps
// accurate positions, and the rasterizer clips what falls outside.
type Normalizer struct {
	Origin func() (x, y float64)
}

// Normalize maps ev into surface-local backing pixels for geometry g.
func (n Normalizer) Normalize(ev state.PointerEvent, g state.Geometry) state.Sample {
	var ox, oy float64
	if n.Origin != nil {
		ox, oy = n.Origin()
	}
	return state.Sample{
		X:           (ev.ClientX - ox) * g.ScaleX(),
		Y:           (ev.ClientY - oy) * g.ScaleY(),
		TimestampMs: ev.TimestampMs,
	}
}
