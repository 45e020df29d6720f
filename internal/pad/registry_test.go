package pad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignaturePad/internal/state"
)

func TestRegistry(t *testing.T) {
	store := state.NewFieldStore()
	reg := NewRegistry(store)
	assert.Same(t, store, reg.Sink())

	a, err := reg.Add(Options{ID: "a"})
	require.NoError(t, err)
	b, err := reg.Add(Options{ID: "b", Sink: state.NewFieldStore()})
	require.NoError(t, err)

	_, err = reg.Add(Options{ID: "a"})
	assert.ErrorIs(t, err, ErrExists)

	got, ok := reg.Get("b")
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, []string{"a", "b"}, reg.IDs())

	require.True(t, a.Initialize(100, 50))
	require.True(t, b.Initialize(100, 50))
	b.HandleEvent(state.PointerEvent{Kind: state.PointerDown, PointerID: 1, ClientX: 5, ClientY: 5})
	b.HandleEvent(state.PointerEvent{Kind: state.PointerUp, PointerID: 1, ClientX: 5, ClientY: 5, TimestampMs: 1})

	assert.False(t, a.HasContent(), "pads share nothing")
	assert.Equal(t, []string{"signaturePad_b"}, store.Fields())

	require.NoError(t, reg.Remove("a"))
	require.NoError(t, reg.Remove("missing"))
	assert.Equal(t, []string{"b"}, reg.IDs())

	require.NoError(t, reg.Close())
	assert.Empty(t, reg.IDs())
	assert.False(t, b.Ready())
}

func TestRegistryGeneratesIDs(t *testing.T) {
	reg := NewRegistry(nil)
	defer reg.Close()

	p, err := reg.Add(Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID())
	_, ok := reg.Get(p.ID())
	assert.True(t, ok)
}
