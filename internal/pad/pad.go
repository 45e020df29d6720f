// Package pad binds the ink pipeline to one drawing surface: it owns the
// render configuration, the stroke session, the backing store and its
// geometry, and publishes the encoded signature to an output sink.
package pad

import (
	"image"
	"sync"
	"time"

	"SignaturePad/internal/config"
	"SignaturePad/internal/export"
	"SignaturePad/internal/ink"
	"SignaturePad/internal/logger"
	"SignaturePad/internal/state"
)

// Options configure a Pad.
type Options struct {
	// ID identifies the surface. Empty means a generated id.
	ID string
	// Config is sanitized before use; the zero value means config.Default().
	Config config.Config
	// Sink receives encoded images. Nil means a private FieldStore.
	Sink state.Sink
	// Origin reports the surface's top-left corner in client coordinates.
	Origin func() (x, y float64)
	// ResizeInterval rate-limits RequestResize.
	ResizeInterval time.Duration
	// Dispatch runs deferred resizes on the host's event loop.
	Dispatch func(func())
	// OnChange is called, without the pad locked, after the backing store
	// changed.
	OnChange func()
}

// Pad is a signature surface. All methods are safe for concurrent use; pointer
// streams are arbitrated by the session's owner check. Values reach the sink
// in the order their operations took effect: a value superseded before it
// was delivered is dropped. The sink must not call Clear or Export.
type Pad struct {
	mu sync.Mutex

	id    string
	field string
	cfg   config.Config
	sink  state.Sink

	normalizer ink.Normalizer
	estimator  *ink.Estimator
	renderer   *ink.Renderer

	geometry  state.Geometry
	container state.Size
	aspect    float64

	session    session
	hasContent bool

	// seq numbers sink values under mu; delivered is the newest value handed
	// to the sink, under pubMu.
	seq       uint64
	pubMu     sync.Mutex
	delivered uint64

	resizes  *Throttler[state.Size]
	onChange func()
}

// New creates a pad. It stays not-ready until Initialize or Resize sees a
// measurable container.
func New(opts Options) *Pad {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	cfg = cfg.Sanitize()

	id := opts.ID
	if id == "" {
		id = state.NewSurfaceID()
	}
	sink := opts.Sink
	if sink == nil {
		sink = state.NewFieldStore()
	}

	p := &Pad{
		id:         id,
		field:      state.FieldName(id),
		cfg:        cfg,
		sink:       sink,
		normalizer: ink.Normalizer{Origin: opts.Origin},
		estimator:  ink.NewEstimator(cfg),
		onChange:   opts.OnChange,
	}
	p.resizes = NewThrottler(opts.ResizeInterval, opts.Dispatch, func(s state.Size) {
		p.Resize(s.Width, s.Height)
	})
	return p
}

// ID returns the surface id.
func (p *Pad) ID() string { return p.id }

// Field returns the name of the output field this pad writes.
func (p *Pad) Field() string { return p.field }

// Config returns the active configuration.
func (p *Pad) Config() config.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Ready reports whether the pad has a backing store.
func (p *Pad) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer != nil
}

// Geometry returns the current surface geometry.
func (p *Pad) Geometry() state.Geometry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.geometry
}

// HasContent reports whether anything was drawn since the last Clear.
func (p *Pad) HasContent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasContent
}

// Points returns the point sequence of the current or last stroke.
func (p *Pad) Points() []state.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderer == nil {
		return nil
	}
	return p.renderer.Points()
}

// Image returns a copy of the backing store, or nil when not ready.
func (p *Pad) Image() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderer == nil {
		return nil
	}
	return p.renderer.Image()
}

// Initialize measures the container for the first time, fixing the aspect
// ratio, and sizes the backing store. It returns false while the container
// is hidden or zero-sized; call it again on the next visibility change.
func (p *Pad) Initialize(width, height float64) bool {
	p.mu.Lock()
	container := state.Size{Width: width, Height: height}
	if container.Empty() {
		p.mu.Unlock()
		logger.L().Debug("pad not ready", "pad", p.id)
		return false
	}
	applied := p.resizeLocked(container, false)
	p.mu.Unlock()

	if applied {
		p.changed()
	}
	return p.Ready()
}

// Clear erases the surface, ends any stroke without committing and empties
// the output field.
func (p *Pad) Clear() {
	p.mu.Lock()
	if p.renderer != nil {
		p.renderer.Clear()
	}
	p.estimator.Reset()
	p.session.reset()
	p.hasContent = false
	seq := p.nextSeq()
	p.mu.Unlock()

	p.publish(seq, "")
	logger.L().Debug("pad cleared", "pad", p.id)
	p.changed()
}

// Reconfigure replaces the configuration wholesale. The geometry is
// recomputed for the new scale factor and existing ink is redrawn into it.
func (p *Pad) Reconfigure(cfg config.Config) {
	cfg = cfg.Sanitize()

	p.mu.Lock()
	p.cfg = cfg
	p.estimator = ink.NewEstimator(cfg)
	redrawn := false
	if p.renderer != nil {
		p.renderer.SetConfig(cfg)
		redrawn = p.resizeLocked(p.container, true)
	}
	p.mu.Unlock()

	logger.L().Debug("pad reconfigured", "pad", p.id, "format", cfg.ExportFormat, "scale", cfg.ScaleFactor)
	if redrawn {
		p.changed()
	}
}

// Export encodes the backing store in the configured format, publishes it to
// the output field and returns it. An empty pad exports an empty string.
func (p *Pad) Export() (string, error) {
	p.mu.Lock()
	if p.renderer == nil || !p.hasContent {
		seq := p.nextSeq()
		p.mu.Unlock()
		p.publish(seq, "")
		return "", nil
	}
	url, err := export.Encode(p.renderer.Image(), p.cfg)
	if err != nil {
		p.mu.Unlock()
		return "", err
	}
	seq := p.nextSeq()
	p.mu.Unlock()
	p.publish(seq, url)
	logger.L().Info("signature exported", "pad", p.id, "field", p.field, "bytes", len(url))
	return url, nil
}

// Close stops pending resizes and releases the backing store.
func (p *Pad) Close() error {
	p.resizes.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderer == nil {
		return nil
	}
	err := p.renderer.Close()
	p.renderer = nil
	return err
}

// nextSeq numbers a value for publish. Call with mu held.
func (p *Pad) nextSeq() uint64 {
	p.seq++
	return p.seq
}

// publish hands value to the sink unless a later value already went out.
func (p *Pad) publish(seq uint64, value string) bool {
	p.pubMu.Lock()
	defer p.pubMu.Unlock()
	if seq <= p.delivered {
		logger.L().Debug("superseded value dropped", "pad", p.id, "seq", seq)
		return false
	}
	p.delivered = seq
	p.sink.Publish(p.field, value)
	return true
}

func (p *Pad) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}
