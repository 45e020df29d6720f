// Package replay drives a pad headlessly from a recorded pointer script.
package replay

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"SignaturePad/internal/config"
	"SignaturePad/internal/pad"
	"SignaturePad/internal/state"
)

// Script is a recorded session: the container the surface was laid out in,
// optional resizes, and the pointer events in delivery order.
//
//	container: {width: 300, height: 150}
//	events:
//	  - {kind: down, id: 1, x: 10, y: 10, t: 0}
//	  - {kind: move, id: 1, x: 50, y: 12, t: 16}
//	  - {kind: up, id: 1, x: 50, y: 12, t: 32}
type Script struct {
	ID        string               `yaml:"id"`
	Container Container            `yaml:"container"`
	Config    yaml.Node            `yaml:"config"`
	Events    []state.PointerEvent `yaml:"events"`
}

// Container is a container size in display pixels.
type Container struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Besides pointer events a script may contain two host actions: "resize",
// whose x and y carry the new container width and height, and "clear".
const (
	Resize state.EventKind = "resize"
	Clear  state.EventKind = "clear"
)

var (
	ErrNoContainer = errors.New("script has no measurable container")
	ErrBadEvent    = errors.New("unknown event kind")
)

// Parse decodes a YAML script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	if (state.Size{Width: s.Container.Width, Height: s.Container.Height}).Empty() {
		return Script{}, ErrNoContainer
	}
	for i, ev := range s.Events {
		switch ev.Kind {
		case state.PointerDown, state.PointerMove, state.PointerUp, state.PointerCancel, state.PointerLeave,
			Resize, Clear:
		default:
			return Script{}, fmt.Errorf("event %d: %w: %q", i, ErrBadEvent, ev.Kind)
		}
	}
	return s, nil
}

// Load reads and parses the script at path.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// ScriptConfig returns base overlaid with the script's own config section,
// whose keys are the attribute names config.FromAttributes accepts.
func (s Script) ScriptConfig(base config.Config) (config.Config, error) {
	if s.Config.IsZero() {
		return base, nil
	}
	var raw map[string]any
	if err := s.Config.Decode(&raw); err != nil {
		return base, fmt.Errorf("script config: %w", err)
	}
	overrides := make(map[string]string, len(raw))
	for k, v := range raw {
		overrides[k] = fmt.Sprint(v)
	}
	attrs := base.Attributes()
	for k, v := range config.NormalizeAttributes(overrides) {
		attrs[k] = v
	}
	return config.FromAttributes(attrs), nil
}

// Run replays s on a new pad publishing to sink. The caller closes the pad.
func Run(s Script, cfg config.Config, sink state.Sink) (*pad.Pad, error) {
	p := pad.New(pad.Options{ID: s.ID, Config: cfg, Sink: sink})
	if !p.Initialize(s.Container.Width, s.Container.Height) {
		p.Close()
		return nil, ErrNoContainer
	}
	for _, ev := range s.Events {
		switch ev.Kind {
		case Resize:
			p.Resize(ev.ClientX, ev.ClientY)
		case Clear:
			p.Clear()
		default:
			p.HandleEvent(ev)
		}
	}
	return p, nil
}
