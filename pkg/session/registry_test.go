package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackTouchList(t *testing.T) {
	registry := NewRegistry()

	registry.Track("t1")
	registry.Touch("t1")

	entries := registry.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "t1", entries[0].ID)
	assert.False(t, entries[0].Record.LastActivity.Before(entries[0].Record.Created),
		"lastActivity must be >= created")
}

func TestTouchUnknownIDIsNoOp(t *testing.T) {
	registry := NewRegistry()
	registry.Track("known")

	registry.Touch("unknown")

	entries := registry.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "known", entries[0].ID)
}

func TestTrackOverwritesExistingEntry(t *testing.T) {
	registry := NewRegistry()

	registry.Track("t1")
	first := registry.List()[0].Record

	registry.Track("t1")
	second := registry.List()[0].Record

	assert.Equal(t, 1, registry.Len())
	assert.False(t, second.Created.Before(first.Created))
}

func TestRemove(t *testing.T) {
	registry := NewRegistry()

	registry.Track("t1")
	registry.Track("t2")
	registry.Remove("t1")

	entries := registry.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "t2", entries[0].ID)

	// Removing an absent id is fine
	registry.Remove("t1")
	assert.Equal(t, 1, registry.Len())
}

func TestListSnapshotIsIndependent(t *testing.T) {
	registry := NewRegistry()
	registry.Track("t1")

	snapshot := registry.List()
	registry.Remove("t1")

	require.Len(t, snapshot, 1, "snapshot must not observe later mutations")
	assert.Equal(t, 0, registry.Len())
}
