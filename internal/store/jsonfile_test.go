package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"pdf-knowledge-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileConcurrentWriters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DocumentRegistry.json")
	reg := NewDocumentRegistry(path)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			err := reg.Append(entity.DocumentRecord{
				Filename: fmt.Sprintf("doc_%02d.pdf", n),
				Status:   entity.DocumentStatusProcessed,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Every writer's record survived the read-modify-write races.
	docs, err := reg.All()
	require.NoError(t, err)
	assert.Len(t, docs, writers)

	// The final file is whole, parseable JSON with all records.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var payload map[string][]entity.DocumentRecord
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Len(t, payload["documents"], writers)

	// Atomic replace leaves no temp files behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DocumentRegistry.json", entries[0].Name())
}

func TestJSONFileUpdateConcurrentCounters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.json")
	file := NewJSONFile(path)

	const increments = 50
	var wg sync.WaitGroup
	wg.Add(increments)
	for i := 0; i < increments; i++ {
		go func() {
			defer wg.Done()
			var state map[string]int
			err := file.Update(&state, func(found bool) (interface{}, error) {
				if !found {
					state = map[string]int{}
				}
				state["count"]++
				return state, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var state map[string]int
	found, err := file.Load(&state)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, increments, state["count"], "no increment may be lost")
}
