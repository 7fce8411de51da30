package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicMemoryCommitAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TopicMemory.json")
	mem := NewTopicMemory(path)

	require.NoError(t, mem.Commit("safety", "Wear gloves."))
	require.NoError(t, mem.Commit("safety", "Ventilate the room."))

	facts, ok, err := mem.Facts("safety")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Wear gloves.\nVentilate the room.", facts)
}

func TestTopicMemoryUnknownTopic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TopicMemory.json")
	mem := NewTopicMemory(path)

	require.NoError(t, mem.Commit("known", "Something."))

	_, ok, err := mem.Facts("unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTopicMemoryEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TopicMemory.json")
	mem := NewTopicMemory(path)

	topics, err := mem.Topics()
	require.NoError(t, err)
	assert.Empty(t, topics)

	count, err := mem.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTopicMemoryTopicsSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TopicMemory.json")
	mem := NewTopicMemory(path)

	require.NoError(t, mem.Commit("zebra", "z"))
	require.NoError(t, mem.Commit("alpha", "a"))
	require.NoError(t, mem.Commit("mango", "m"))

	topics, err := mem.Topics()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mango", "zebra"}, topics)
}
