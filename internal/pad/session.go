package pad

import (
	"SignaturePad/internal/export"
	"SignaturePad/internal/logger"
	"SignaturePad/internal/state"
)

// session is the stroke state machine: Idle, or Active with an owning
// pointer. Other pointers pressed meanwhile are only counted.
type session struct {
	active    bool
	owner     int
	dirty     bool
	secondary map[int]struct{}
}

func (s *session) reset() {
	s.active = false
	s.dirty = false
	s.secondary = nil
}

// Active reports whether a stroke is in progress.
func (p *Pad) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.active
}

// SecondaryPointers returns how many non-owning pointers are currently down.
func (p *Pad) SecondaryPointers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.session.secondary)
}

// HandleEvent feeds one pointer event through the session. Events are
// ignored while the pad is not ready.
func (p *Pad) HandleEvent(ev state.PointerEvent) {
	p.mu.Lock()
	drew, commit, seq := p.handleLocked(ev)
	p.mu.Unlock()

	if seq != 0 && p.publish(seq, commit) {
		logger.L().Info("signature committed", "pad", p.id, "field", p.field, "bytes", len(commit))
	}
	if drew {
		p.changed()
	}
}

// handleLocked applies ev and reports whether ink was drawn. A committed
// stroke also returns the encoded image and its publish sequence number.
func (p *Pad) handleLocked(ev state.PointerEvent) (drew bool, commit string, seq uint64) {
	if p.renderer == nil {
		return false, "", 0
	}
	s := &p.session

	switch {
	case ev.Kind == state.PointerDown:
		if s.active {
			if ev.PointerID != s.owner {
				if s.secondary == nil {
					s.secondary = make(map[int]struct{})
				}
				s.secondary[ev.PointerID] = struct{}{}
			}
			return false, "", 0
		}
		s.active = true
		s.owner = ev.PointerID
		s.secondary = nil
		p.estimator.Reset()
		p.renderer.Begin(p.point(ev))
		s.dirty = true
		p.hasContent = true
		return true, "", 0

	case ev.Kind == state.PointerMove:
		if !s.active || ev.PointerID != s.owner {
			return false, "", 0
		}
		p.renderer.Extend(p.point(ev))
		return true, "", 0

	case ev.Kind.Ends():
		if !s.active || ev.PointerID != s.owner {
			delete(s.secondary, ev.PointerID)
			return false, "", 0
		}
		p.renderer.End()
		s.active = false
		if !s.dirty {
			return true, "", 0
		}
		s.dirty = false
		url, err := export.Encode(p.renderer.Image(), p.cfg)
		if err != nil {
			logger.L().Warn("commit failed", "pad", p.id, "error", err)
			return true, "", 0
		}
		return true, url, p.nextSeq()
	}
	return false, "", 0
}

func (p *Pad) point(ev state.PointerEvent) state.Point {
	s := p.normalizer.Normalize(ev, p.geometry)
	return state.Point{X: s.X, Y: s.Y, Thickness: p.estimator.Next(s)}
}
