package ink

import (
	"math"

	"SignaturePad/internal/config"
	"SignaturePad/internal/state"
)

// Estimator derives stroke thickness from pointer speed. Fast motion gives
// thin ink, slow motion thick ink. The emitted value is the mean of the last
// SmoothnessWindow instantaneous values.
type Estimator struct {
	cfg     config.Config
	recent  []float64
	last    state.Sample
	started bool
}

// NewEstimator creates an estimator for cfg.
func NewEstimator(cfg config.Config) *Estimator {
	cfg = cfg.Sanitize()
	return &Estimator{
		cfg:    cfg,
		recent: make([]float64, 0, cfg.SmoothnessWindow),
	}
}

// Reset forgets the previous sample and the smoothing window. The next
// sample is treated as the first of a stroke.
func (e *Estimator) Reset() {
	e.recent = e.recent[:0]
	e.started = false
}

// Next returns the smoothed thickness for s. The first sample after Reset
// yields MaxThickness so taps leave a firm dot.
func (e *Estimator) Next(s state.Sample) float64 {
	if !e.started {
		e.started = true
		e.last = s
		e.push(e.cfg.MaxThickness)
		return e.cfg.MaxThickness
	}
	t := e.instantaneous(e.last, s)
	e.last = s
	e.push(t)
	return e.mean()
}

// instantaneous maps the speed between prev and cur to a thickness. A
// non-positive interval counts as infinitely fast.
func (e *Estimator) instantaneous(prev, cur state.Sample) float64 {
	c := e.cfg
	dt := cur.TimestampMs - prev.TimestampMs
	normalized := 1.0
	if dt > 0 {
		speed := math.Hypot(cur.X-prev.X, cur.Y-prev.Y) / dt * c.SpeedSensitivity
		normalized = (speed - c.MinSpeed) / (c.MaxSpeed - c.MinSpeed)
		normalized = math.Max(0, math.Min(1, normalized))
	}
	return c.MaxThickness - normalized*(c.MaxThickness-c.MinThickness)
}

func (e *Estimator) push(t float64) {
	if len(e.recent) == e.cfg.SmoothnessWindow {
		copy(e.recent, e.recent[1:])
		e.recent = e.recent[:len(e.recent)-1]
	}
	e.recent = append(e.recent, t)
}

func (e *Estimator) mean() float64 {
	var sum float64
	for _, t := range e.recent {
		sum += t
	}
	return sum / float64(len(e.recent))
}
