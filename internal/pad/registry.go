package pad

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"SignaturePad/internal/logger"
	"SignaturePad/internal/state"
)

// ErrExists is returned by Registry.Add for a surface id already in use.
var ErrExists = errors.New("pad: surface already registered")

// Registry maps surface ids to pads. The host application owns it; pads
// registered in different registries are independent.
type Registry struct {
	mu   sync.RWMutex
	pads map[string]*Pad
	sink state.Sink
}

// NewRegistry creates a registry whose pads publish to sink. A nil sink
// means a shared FieldStore.
func NewRegistry(sink state.Sink) *Registry {
	if sink == nil {
		sink = state.NewFieldStore()
	}
	return &Registry{pads: make(map[string]*Pad), sink: sink}
}

// Sink returns the output sink shared by the registry's pads.
func (r *Registry) Sink() state.Sink { return r.sink }

// Add creates a pad from opts and registers it. opts.Sink is ignored in
// favour of the registry's sink.
func (r *Registry) Add(opts Options) (*Pad, error) {
	if opts.ID == "" {
		opts.ID = state.NewSurfaceID()
	}
	opts.Sink = r.sink

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pads[opts.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrExists, opts.ID)
	}
	p := New(opts)
	r.pads[p.ID()] = p
	logger.L().Debug("pad registered", "pad", p.ID(), "field", p.Field())
	return p, nil
}

// Get returns the pad registered under id.
func (r *Registry) Get(id string) (*Pad, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pads[id]
	return p, ok
}

// IDs returns the registered surface ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.pads))
	for id := range r.pads {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Remove closes and unregisters the pad with the given id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	p, ok := r.pads[id]
	delete(r.pads, id)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return p.Close()
}

// Close closes every registered pad.
func (r *Registry) Close() error {
	r.mu.Lock()
	pads := r.pads
	r.pads = make(map[string]*Pad)
	r.mu.Unlock()

	var errs []error
	for _, p := range pads {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
