package state

// Sample is one recorded pointer position in backing-store pixels.
type Sample struct {
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	TimestampMs float64 `json:"t" yaml:"t"`
}

// Point is a sample annotated with the thickness it was drawn with.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Thickness float64 `json:"thickness"`
}

// EventKind identifies a pointer event.
type EventKind string

const (
	PointerDown   EventKind = "down"
	PointerMove   EventKind = "move"
	PointerUp     EventKind = "up"
	PointerCancel EventKind = "cancel"
	PointerLeave  EventKind = "leave"
)

// Ends reports whether the event finishes the stroke of its pointer.
func (k EventKind) Ends() bool {
	return k == PointerUp || k == PointerCancel || k == PointerLeave
}

// PointerEvent is what an input source delivers. Client coordinates are in
// the host's display space; the timestamp is in milliseconds.
type PointerEvent struct {
	Kind        EventKind `json:"kind" yaml:"kind"`
	PointerID   int       `json:"id" yaml:"id"`
	ClientX     float64   `json:"x" yaml:"x"`
	ClientY     float64   `json:"y" yaml:"y"`
	TimestampMs float64   `json:"t" yaml:"t"`
}
