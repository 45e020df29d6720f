package state

import (
	"strings"

	"github.com/google/uuid"
)

// FieldPrefix prefixes the output field name of every pad.
const FieldPrefix = "signaturePad_"

// NewSurfaceID returns a fresh identifier for a pad that has none of its own.
func NewSurfaceID() string {
	return uuid.NewString()
}

// FieldName returns the output field key for the surface with the given id.
// An empty id gets a generated one so two anonymous pads never collide.
func FieldName(surfaceID string) string {
	surfaceID = strings.TrimSpace(surfaceID)
	if surfaceID == "" {
		surfaceID = NewSurfaceID()
	}
	return FieldPrefix + surfaceID
}
